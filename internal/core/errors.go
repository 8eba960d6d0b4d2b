package core

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateAnalysis  = errors.New("campaign analysis already exists")
	ErrInvalidSelector    = errors.New("invalid selector")
	ErrInvalidTimeWindow  = errors.New("invalid time window")
	ErrUnknownKind        = errors.New("unknown interaction kind")
	ErrUnknownNetworkType = errors.New("unknown network type")
	ErrUnknownMetric      = errors.New("unknown network metric")
)
