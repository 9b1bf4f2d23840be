package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noMoreReads 不允许续读的场景用它，一旦被调用直接让测试失败
func noMoreReads(t *testing.T) readMoreFunc {
	return func() ([]byte, error) {
		t.Fatal("parseRequest 不应该继续读")
		return nil, nil
	}
}

// chunkReader 每次调用依次吐出一段字节，耗尽后返回 EOF
func chunkReader(chunks ...string) readMoreFunc {
	i := 0
	return func() ([]byte, error) {
		if i >= len(chunks) {
			return nil, io.EOF
		}
		chunk := chunks[i]
		i++
		return []byte(chunk), nil
	}
}

func TestParseRequestLine(t *testing.T) {
	raw := "GET /user-agent HTTP/1.1\r\nHost: localhost:4221\r\nUser-Agent: foobar/1.2.3\r\n\r\n"
	req := parseRequest([]byte(raw), noMoreReads(t))

	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/user-agent", req.Path)
	assert.Equal(t, "HTTP/1.1", req.Version)
	assert.Equal(t, "localhost:4221", req.Headers["host"])
	assert.Equal(t, "foobar/1.2.3", req.Headers["user-agent"])
	assert.Empty(t, req.Body)
}

func TestParseHeaderFoldAndOverwrite(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nX-Tag: first\r\nx-tag: second\r\nACCEPT: */*\r\n\r\n"
	req := parseRequest([]byte(raw), noMoreReads(t))

	// key 统一小写，重复的 key 后写覆盖先写
	assert.Equal(t, "second", req.Headers["x-tag"])
	assert.Equal(t, "*/*", req.Headers["accept"])
	_, ok := req.Headers["X-Tag"]
	assert.False(t, ok)
}

func TestParseSkipsLinesWithoutSeparator(t *testing.T) {
	raw := "GET / HTTP/1.1\r\njust-some-garbage\r\nColon:NoSpace\r\nHost: a\r\n\r\n"
	req := parseRequest([]byte(raw), noMoreReads(t))

	// 没有 ": " 的行静默跳过，不影响其余头部
	assert.Equal(t, "a", req.Headers["host"])
	assert.Len(t, req.Headers, 1)
}

func TestParseMissingSeparatorReturnsEmpty(t *testing.T) {
	// 首个缓冲区里没有 \r\n\r\n：直接返回空 Request，绝不续读
	raw := "GET / HTTP/1.1\r\nHost: localhost\r\n"
	req := parseRequest([]byte(raw), noMoreReads(t))
	assert.Equal(t, Request{}, req)
}

func TestParseBadContentLengthReturnsEmpty(t *testing.T) {
	raw := "POST /files/a HTTP/1.1\r\nContent-Length: ten\r\n\r\nbody"
	req := parseRequest([]byte(raw), noMoreReads(t))
	assert.Equal(t, Request{}, req)
}

func TestParseNegativeContentLengthReturnsEmpty(t *testing.T) {
	// 负数能过 Atoi，但和非数字一样按畸形请求处理，绝不能让会话崩掉
	for _, cl := range []string{"-1", "-4096"} {
		raw := "POST /files/a HTTP/1.1\r\nContent-Length: " + cl + "\r\n\r\nbody"
		req := parseRequest([]byte(raw), noMoreReads(t))
		assert.Equal(t, Request{}, req)
	}
}

func TestParseBodyFromInitialBuffer(t *testing.T) {
	raw := "POST /files/a HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello"
	req := parseRequest([]byte(raw), noMoreReads(t))
	assert.Equal(t, []byte("hello"), req.Body)
}

func TestParseBodyContinuation(t *testing.T) {
	// 首个缓冲区只带了 4 字节 body，剩下的分两次续读凑齐
	raw := "POST /files/a HTTP/1.1\r\nContent-Length: 10\r\n\r\nabcd"
	req := parseRequest([]byte(raw), chunkReader("efg", "hij"))
	require.Equal(t, []byte("abcdefghij"), req.Body)
}

func TestParseBodyEOFTruncates(t *testing.T) {
	// 对端提前断开：body 以实际收到的为准
	raw := "POST /files/a HTTP/1.1\r\nContent-Length: 10\r\n\r\nabcd"
	req := parseRequest([]byte(raw), chunkReader("ef"))
	assert.Equal(t, []byte("abcdef"), req.Body)
}

func TestParseBodyTruncatedToContentLength(t *testing.T) {
	// 多出 Content-Length 的字节被丢弃
	raw := "POST /files/a HTTP/1.1\r\nContent-Length: 4\r\n\r\nhello"
	req := parseRequest([]byte(raw), noMoreReads(t))
	assert.Equal(t, []byte("hell"), req.Body)
}

func TestParseNoContentLengthMeansEmptyBody(t *testing.T) {
	raw := "GET / HTTP/1.1\r\n\r\nstray-bytes"
	req := parseRequest([]byte(raw), noMoreReads(t))
	assert.Empty(t, req.Body)
}
