package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/studentreg/internal/app/models/dto"
	"github.com/yigit/studentreg/internal/pkg/helpers"
)

const healthPingTimeout = 2 * time.Second

type systemServiceImpl struct {
	db        ConnectionChecker
	startedAt time.Time
	logger    zerolog.Logger
	now       func() time.Time
}

// NewSystemService creates the hello/health service. startedAt is the
// process start used for uptime.
func NewSystemService(db ConnectionChecker, startedAt time.Time, lgr zerolog.Logger) SystemService {
	return &systemServiceImpl{
		db:        db,
		startedAt: startedAt,
		logger:    lgr.With().Str("service", "system").Logger(),
		now:       time.Now,
	}
}

func (s *systemServiceImpl) Hello() dto.HelloResponse {
	return dto.HelloResponse{Message: "Hello World"}
}

// Health reports "ok" unless the database is connected but no longer answers pings.
func (s *systemServiceImpl) Health(ctx context.Context) dto.HealthResponse {
	now := s.now()
	resp := dto.HealthResponse{
		Status:    dto.HealthOK,
		Timestamp: helpers.FormatISO(now),
		Uptime:    now.Sub(s.startedAt).Seconds(),
		MongoDB:   dto.MongoDisconnected,
	}

	if !s.db.IsConnected() {
		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	if err := s.db.Ping(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Health check ping failed")
		resp.Status = dto.HealthError
		return resp
	}

	resp.MongoDB = dto.MongoConnected
	return resp
}
