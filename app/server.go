package main

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// readBufSize 单次阻塞读的缓冲区大小
// 请求头必须在首次读到的这么多字节里完整出现
const readBufSize = 4096

// Server 监听端口，为每个接入的连接开一个独立的 goroutine 跑会话循环
// 会话之间没有任何可变共享状态，只读共享路由表和配置
type Server struct {
	cfg Config
	mux *Mux
	log zerolog.Logger

	mu     sync.Mutex
	ln     net.Listener
	closed bool
	wg     sync.WaitGroup
}

// NewServer 创建服务器，配置和路由表此后不再变化
func NewServer(cfg Config, mux *Mux, log zerolog.Logger) *Server {
	return &Server{cfg: cfg, mux: mux, log: log}
}

// ListenAndServe 绑定配置的地址并进入 accept 循环
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("绑定端口失败: %w", err)
	}
	return s.Serve(ln)
}

// Serve 顺序 accept，每个连接交给独立的 goroutine，自己从不等会话结束
// 只有 Shutdown 关闭监听器才会正常返回；其他 accept 错误记录后继续
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	s.log.Info().Str("addr", ln.Addr().String()).Msg("listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.log.Info().Msg("listener closed, stop accepting")
				return nil
			}
			s.log.Error().Err(err).Msg("accept failed")
			continue
		}
		// 登记会话要和 Shutdown 的 closed 标记互斥：
		// 恰好在关停瞬间 accept 到的连接要么被计入等待，要么直接关掉
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			continue
		}
		s.wg.Add(1)
		s.mu.Unlock()
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

// Shutdown 关闭监听器并等待所有在途会话跑完
func (s *Server) Shutdown() error {
	s.mu.Lock()
	s.closed = true
	ln := s.ln
	s.mu.Unlock()

	var err error
	if ln != nil {
		err = ln.Close()
	}
	s.wg.Wait()
	return err
}

// handleConnection 一条连接的完整会话：
// 读 → 解析 → 路由 → 写，循环处理 keep-alive 上的多个请求
// 无论从哪一步退出，连接都恰好关闭一次
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	buf := make([]byte, readBufSize)
	w := &responseWriter{conn: conn}

	readMore := func() ([]byte, error) {
		s.armReadDeadline(conn)
		more := make([]byte, readBufSize)
		n, err := conn.Read(more)
		if n <= 0 {
			if err == nil {
				err = io.EOF
			}
			return nil, err
		}
		return more[:n], nil
	}

	for {
		s.armReadDeadline(conn)
		n, err := conn.Read(buf)
		if err != nil || n <= 0 {
			// 对端关闭或读出错，结束会话
			return
		}

		req := parseRequest(buf[:n], readMore)

		// 本轮应答之后是否关闭连接，由请求头 Connection: close 决定
		closing := req.Headers["connection"] == "close"

		resp := s.mux.Route(req, s.cfg.BaseDir)
		if err := w.send(resp, closing); err != nil {
			// 写失败一般意味着客户端断开，结束该连接
			s.log.Debug().Err(err).Msg("write response failed")
			return
		}
		if closing {
			return
		}
	}
}

// armReadDeadline 配置了 ReadTimeout 时给下一次阻塞读设截止时间
func (s *Server) armReadDeadline(conn net.Conn) {
	if s.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}
}
