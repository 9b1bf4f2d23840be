package main

import "strings"

// handlerFunc 路由动作：拿到请求和文件目录，产出一个响应
type handlerFunc func(req Request, baseDir string) Response

// route 路由表里的一条规则：方法 + path 匹配条件 + 动作
type route struct {
	method  string
	match   func(path string) bool
	handler handlerFunc
}

// Mux 按注册顺序逐条匹配的路由器，第一条命中即分发
// 路由表在进程生命周期内不再变化，可以被所有会话只读共享
type Mux struct {
	routes []route
}

// NewMux 创建一个新的路由器
func NewMux() *Mux {
	return &Mux{}
}

// Handle 追加一条规则，注册顺序就是匹配优先级
func (m *Mux) Handle(method string, match func(string) bool, handler handlerFunc) {
	m.routes = append(m.routes, route{method: method, match: match, handler: handler})
}

// Route 依次比对 method 与 path，没有任何规则命中则默认 404
// 畸形请求解析出的空 Request 也从这里落到 404
func (m *Mux) Route(req Request, baseDir string) Response {
	for _, r := range m.routes {
		if r.method == req.Method && r.match(req.Path) {
			return r.handler(req, baseDir)
		}
	}
	return rawResponse("404 Not Found")
}

// 两类 path 匹配条件：完全相等 与 前缀匹配
func exact(p string) func(string) bool {
	return func(path string) bool { return path == p }
}

func prefix(p string) func(string) bool {
	return func(path string) bool { return strings.HasPrefix(path, p) }
}

// newRouteTable 注册固定的五条路由
func newRouteTable() *Mux {
	m := NewMux()
	m.Handle("GET", exact("/"), rootHandler)
	m.Handle("GET", prefix("/echo/"), echoHandler)
	m.Handle("GET", exact("/user-agent"), userAgentHandler)
	m.Handle("GET", prefix("/files/"), fileReadHandler)
	m.Handle("POST", prefix("/files/"), fileWriteHandler)
	return m
}
