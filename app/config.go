package main

import "time"

// Config 服务器的全部可配置项
// 在进程启动时构造一次，之后按值传入 Server，
// 不使用任何进程级的全局可变状态
type Config struct {
	// Addr 监听地址，例如 "0.0.0.0:4221"
	Addr string

	// BaseDir --directory 传入的文件目录
	// 原样拼接成文件路径前缀，不做任何转义或清洗
	BaseDir string

	// ReadTimeout 单次阻塞读的超时时间
	// 0 表示不设超时：客户端声明了 Content-Length 却不发完剩余字节时，
	// 该会话会一直阻塞等待，这是有意保留的默认行为
	ReadTimeout time.Duration
}
