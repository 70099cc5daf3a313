// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/api/admin"
	"github.com/gona-network/gonastake/api/admin/health"
	"github.com/gona-network/gonastake/co"
)

const adminShutdownTimeout = 3 * time.Second

// StartAdminServer serves the log level and health routes on addr. The
// returned func stops the server, letting in-flight requests finish first.
func StartAdminServer(addr string, logLevel *slog.LevelVar, h *health.Health) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen admin API addr [%v]", addr)
	}

	srv := &http.Server{
		Handler:           admin.New(logLevel, h),
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
	}
	var goes co.Goes
	goes.Go(func() {
		if err := srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("admin server exited", "err", err)
		}
	})

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), adminShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Debug("admin server shutdown", "err", err)
			srv.Close()
		}
		goes.Wait()
	}
	return fmt.Sprintf("http://%v/admin", listener.Addr()), stop, nil
}
