package config

// 配置文件中可识别的键，全部可选，缺省时各输出端使用默认值
const (
	KeyDest         = "log_dest"          // 0=stderr 1=file 2=rolling 3=database
	KeyLevel        = "log_level"         // 0..3 对应 DEBUG..ERROR，>=4 忽略
	KeyFilePath     = "file_path"         // 日志目录
	KeyFileBaseName = "file_base_name"    // 文件基础名
	KeyFileSuffix   = "file_suffix"       // 后缀，可带可不带前导点
	KeyFlushNum     = "num_logs_to_flush" // 攒多少条强制刷一次

	// database 输出专用
	KeyDBDriver = "db_driver" // mysql | postgres
	KeyDBDSN    = "db_dsn"
	KeyDBTable  = "db_table"
)

const (
	DefaultFilePath     = "/tmp/log"
	DefaultFileBaseName = "log"
	DefaultFileSuffix   = "" // 默认无后缀
	DefaultFlushNum     = 1
	DefaultDBDriver     = "mysql"
	DefaultDBTable      = "logs"
)
