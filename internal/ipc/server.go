package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"vigil/internal/capture"
	"vigil/internal/daemon"
	"vigil/internal/ledger"
	"vigil/internal/logging"
	"vigil/internal/review"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path. shutdown is
// invoked when a client requests daemon termination.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, shutdown func(), logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	logger = logging.NewComponentLogger(logger, "ipc")

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, shutdown: shutdown, logger: logger, ctx: ctx}
	if err := rpcServer.RegisterName("Vigil", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err))
	}
}

type service struct {
	daemon   *daemon.Daemon
	shutdown func()
	logger   *slog.Logger
	ctx      context.Context
}

func (s *service) Start(_ StartRequest, resp *StartResponse) error {
	if err := s.daemon.Start(s.ctx); err != nil {
		resp.Started = false
		resp.Message = err.Error()
		return nil
	}
	resp.Started = true
	resp.Message = "monitoring started"
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.daemon.Stop()
	resp.Stopped = true
	return nil
}

func (s *service) Shutdown(_ ShutdownRequest, resp *ShutdownResponse) error {
	resp.ShuttingDown = s.shutdown != nil
	if s.shutdown != nil {
		s.logger.Info("daemon shutdown requested via IPC")
		go s.shutdown()
	}
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status()
	resp.Running = status.Running
	resp.Day = status.Monitor.Day
	resp.Captures = status.Monitor.Captures
	resp.IntervalMin = status.Monitor.IntervalMin
	resp.IntervalMax = status.Monitor.IntervalMax
	resp.PixelSize = status.Monitor.PixelSize
	resp.OnTask = status.OnTask
	resp.OffTask = status.OffTask
	resp.None = status.None
	resp.SaveDir = status.SaveDir
	resp.LockPath = status.LockPath
	resp.SessionID = status.SessionID
	resp.PID = status.PID
	return nil
}

func (s *service) List(req ListRequest, resp *ListResponse) error {
	day := req.Day
	if day == "" {
		day = s.daemon.Status().Monitor.Day
	}

	var (
		records []ledger.Record
		err     error
	)
	if req.PendingOnly {
		records, err = s.daemon.Pending(day)
	} else {
		records, err = s.daemon.Records(day)
	}
	if err != nil {
		return err
	}

	resp.Day = day
	resp.Records = make([]Record, 0, len(records))
	for _, rec := range records {
		view := Record{
			Filename:       rec.Filename,
			Classification: string(rec.Classification),
		}
		if t, err := capture.ParseFilename(rec.Filename); err == nil {
			view.CapturedAt = capture.TimeLabel(t)
		}
		resp.Records = append(resp.Records, view)
	}
	resp.OnTask, resp.OffTask, resp.None, err = s.daemon.Totals(day)
	return err
}

func (s *service) Resolve(req ResolveRequest, resp *ResolveResponse) error {
	decision, ok := review.ParseDecision(req.Decision)
	if !ok {
		return fmt.Errorf("unknown decision %q", req.Decision)
	}
	if err := s.daemon.Resolve(s.ctx, req.Day, req.Filename, decision); err != nil {
		return err
	}
	resp.Applied = true
	resp.Message = fmt.Sprintf("%s: %s", req.Filename, decision)
	return nil
}

func (s *service) SetDay(req SetDayRequest, resp *SetDayResponse) error {
	if err := s.daemon.SetDay(req.Day); err != nil {
		return err
	}
	resp.Day = req.Day
	return nil
}

func (s *service) SetIntervals(req SetIntervalsRequest, _ *SetIntervalsResponse) error {
	return s.daemon.SetIntervals(req.Min, req.Max)
}

func (s *service) SetPixelSize(req SetPixelSizeRequest, _ *SetPixelSizeResponse) error {
	return s.daemon.SetPixelSize(req.Size)
}

func (s *service) TestNotification(_ TestNotificationRequest, resp *TestNotificationResponse) error {
	if err := s.daemon.TestNotification(s.ctx); err != nil {
		return err
	}
	resp.Sent = true
	return nil
}
