// Package config 提供日志系统的只读配置视图
// 文件格式由扩展名决定（.json 用 JSON，其余按 YAML 解析），
// 各输出端只通过 GetUnsigned / GetString 做带类型的查询
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// View 是一份解析完成的日志配置，只读
type View struct {
	k    *koanf.Koanf
	path string
}

// Load 读取并解析配置文件
func Load(path string) (*View, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var parser koanf.Parser
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		parser = kjson.Parser()
	} else {
		parser = kyaml.Parser()
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &View{k: k, path: path}, nil
}

// Empty 返回一份空配置视图，所有查询都不命中
// 未指定配置文件时走这里，各输出端全部使用默认值
func Empty() *View {
	return &View{k: koanf.New(".")}
}

// Path 返回配置文件路径，空视图返回 ""
func (v *View) Path() string {
	if v == nil {
		return ""
	}
	return v.path
}

// GetUnsigned 当键存在且能解析为无符号整数时写入 out 并返回 true，
// 否则不动 out。负数、小数都不算命中
func (v *View) GetUnsigned(key string, out *uint64) bool {
	if v == nil || !v.k.Exists(key) {
		return false
	}

	switch raw := v.k.Get(key).(type) {
	case int:
		if raw < 0 {
			return false
		}
		*out = uint64(raw)
	case int64:
		if raw < 0 {
			return false
		}
		*out = uint64(raw)
	case uint64:
		*out = raw
	case float64:
		// YAML/JSON 数字可能落成 float，只接受整数值
		if raw < 0 || raw != math.Trunc(raw) {
			return false
		}
		*out = uint64(raw)
	case string:
		n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return false
		}
		*out = n
	default:
		return false
	}
	return true
}

// GetString 当键存在且为字符串时写入 out 并返回 true
func (v *View) GetString(key string, out *string) bool {
	if v == nil || !v.k.Exists(key) {
		return false
	}
	raw, ok := v.k.Get(key).(string)
	if !ok {
		return false
	}
	*out = raw
	return true
}
