package main

import (
	"bytes"
	"strconv"
	"strings"
)

// CRLF \r\n 是两个字符组成的序列：
// \r：carriage return，中文通常叫 回车
// \n：line feed，中文通常叫 换行
// HTTP 用它结束每个头部行，用连续两个 CRLF 分隔头部和 body
var CRLF = "\r\n"

// Request 表示一个解析完成的 HTTP 请求（不依赖 net/http）
// 由 parseRequest 构造一次，之后不再修改，路由消费完即丢弃
type Request struct {
	Method  string
	Path    string // 原样保留，不做解码或归一化
	Version string
	Headers map[string]string // key 插入时统一转小写，重复的 key 后写覆盖先写
	Body    []byte
}

// readMoreFunc 是"再读一点"的续读能力：
// 返回新读到的字节，EOF 或读失败时返回 error
type readMoreFunc func() ([]byte, error)

// parseRequest 把首次读到的字节解析成一个 Request
// body 不完整时通过 readMore 继续拉取，直到凑够 Content-Length 或对端断开
//
// 首个缓冲区里找不到头部与 body 的分隔符时视为畸形请求，
// 直接返回空 Request 且不再尝试读取，由路由的默认规则兜底成 404
func parseRequest(initial []byte, readMore readMoreFunc) Request {
	sep := bytes.Index(initial, []byte(CRLF+CRLF))
	if sep < 0 {
		return Request{}
	}

	lines := strings.Split(string(initial[:sep]), CRLF)

	// 请求行：按空白切成 method / path / version，不校验 token 语法
	var req Request
	parts := strings.Fields(lines[0])
	if len(parts) > 0 {
		req.Method = parts[0]
	}
	if len(parts) > 1 {
		req.Path = parts[1]
	}
	if len(parts) > 2 {
		req.Version = parts[2]
	}

	// 请求头：按第一个 ": " 分成 key 和 value
	// 没有分隔符的行直接跳过，不算错误
	req.Headers = make(map[string]string)
	for _, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		idx := strings.Index(line, ": ")
		if idx < 0 {
			continue
		}
		key := strings.ToLower(line[:idx])
		req.Headers[key] = line[idx+2:]
	}

	// Content-Length 缺省为 0，不是数字或是负数都视为该请求的致命解析错误，
	// 同样退化成空 Request 走 404
	contentLength := 0
	if clStr, ok := req.Headers["content-length"]; ok {
		length, err := strconv.Atoi(clStr)
		if err != nil || length < 0 {
			return Request{}
		}
		contentLength = length
	}

	// body 先取首个缓冲区里分隔符之后的部分，
	// 不够 Content-Length 就反复续读，对端断开则以收到的为准
	body := append([]byte(nil), initial[sep+4:]...)
	for len(body) < contentLength {
		more, err := readMore()
		if err != nil || len(more) == 0 {
			break
		}
		body = append(body, more...)
	}
	if len(body) > contentLength {
		body = body[:contentLength]
	}
	req.Body = body

	return req
}
