package main

import (
	"bytes"
	"compress/gzip"
	"os"
	"strings"
)

// rootHandler 根路径：仅状态行的 200，无 body
func rootHandler(req Request, baseDir string) Response {
	return rawResponse("200 OK")
}

// echoHandler /echo/<tail>：把前缀之后的部分原样回显，不做解码
// 客户端在 Accept-Encoding 里声明接受 gzip 时压缩后返回
func echoHandler(req Request, baseDir string) Response {
	tail := strings.TrimPrefix(req.Path, "/echo/")
	resp := Response{
		Status:      "200 OK",
		ContentType: "text/plain",
		Body:        []byte(tail),
	}

	if acceptsGzip(req.Headers["accept-encoding"]) {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(resp.Body); err != nil {
			return rawResponse("500 Internal Server Error")
		}
		gw.Close()
		resp.Body = buf.Bytes()
		resp.Headers = map[string]string{"Content-Encoding": "gzip"}
	}

	return resp
}

// acceptsGzip 判断 Accept-Encoding 的编码列表里是否有 gzip
func acceptsGzip(accept string) bool {
	for _, enc := range strings.Split(accept, ",") {
		if strings.TrimSpace(enc) == "gzip" {
			return true
		}
	}
	return false
}

// userAgentHandler /user-agent：把 User-Agent 头原样返回
// 没带这个头时返回字符串 "Unknown"
func userAgentHandler(req Request, baseDir string) Response {
	userAgent, ok := req.Headers["user-agent"]
	if !ok {
		userAgent = "Unknown"
	}
	return Response{
		Status:      "200 OK",
		ContentType: "text/plain",
		Body:        []byte(userAgent),
	}
}

// fileReadHandler GET /files/<name>：按二进制整读 baseDir/<name>
// 文件名直接拼进路径，打不开一律视为不存在返回 404
func fileReadHandler(req Request, baseDir string) Response {
	name := strings.TrimPrefix(req.Path, "/files/")
	content, err := os.ReadFile(baseDir + "/" + name)
	if err != nil {
		return rawResponse("404 Not Found")
	}
	return Response{
		Status:      "200 OK",
		ContentType: "application/octet-stream",
		Body:        content,
	}
}

// fileWriteHandler POST /files/<name>：把请求体原样写入 baseDir/<name>
// 覆盖已有内容；打不开或写失败返回 500，成功返回仅状态行的 201
func fileWriteHandler(req Request, baseDir string) Response {
	name := strings.TrimPrefix(req.Path, "/files/")
	if err := os.WriteFile(baseDir+"/"+name, req.Body, 0o644); err != nil {
		return rawResponse("500 Internal Server Error")
	}
	return rawResponse("201 Created")
}
