package main

import (
	"bytes"
	"io"
	"strconv"
)

// Response 路由产出的响应，两种形态：
//   - Status/ContentType/Body 三元组，由 responseWriter 负责组帧，
//     自动补上 Content-Length 和 Connection 头
//   - Raw 预先拼好的原始报文，仅状态行的应答用它，不带 Connection 头
type Response struct {
	Status      string // 例如 "200 OK"
	ContentType string
	Headers     map[string]string // 额外头部，例如 Content-Encoding
	Body        []byte
	Raw         []byte
}

// rawResponse 拼一个只有状态行的原始应答
func rawResponse(statusLine string) Response {
	return Response{Raw: []byte("HTTP/1.1 " + statusLine + CRLF + CRLF)}
}

// responseWriter 绑定在一条连接上，把 Response 序列化后写出去
// 写失败的 error 由会话视为该连接的致命错误
type responseWriter struct {
	conn io.Writer
}

// send 消费一个 Response，按其形态选择组帧或原样写出
func (w *responseWriter) send(resp Response, closing bool) error {
	if resp.Raw != nil {
		return w.sendRaw(resp.Raw)
	}
	return w.sendStructured(resp, closing)
}

// sendStructured 组帧并写出：
// HTTP/1.1 <status>\r\nContent-Type: ...\r\nContent-Length: ...\r\nConnection: ...\r\n\r\n<body>
func (w *responseWriter) sendStructured(resp Response, closing bool) error {
	var buf bytes.Buffer
	buf.WriteString("HTTP/1.1 " + resp.Status + CRLF)
	buf.WriteString("Content-Type: " + resp.ContentType + CRLF)
	buf.WriteString("Content-Length: " + strconv.Itoa(len(resp.Body)) + CRLF)
	for key, value := range resp.Headers {
		buf.WriteString(key + ": " + value + CRLF)
	}
	if closing {
		buf.WriteString("Connection: close" + CRLF)
	} else {
		buf.WriteString("Connection: keep-alive" + CRLF)
	}
	buf.WriteString(CRLF)
	buf.Write(resp.Body)

	_, err := w.conn.Write(buf.Bytes())
	return err
}

// sendRaw 原样写出预先拼好的字节
func (w *responseWriter) sendRaw(raw []byte) error {
	_, err := w.conn.Write(raw)
	return err
}
