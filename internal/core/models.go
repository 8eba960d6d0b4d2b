package core

import (
	"time"
)

type AnalysisStatus string

const (
	StatusComputing AnalysisStatus = "computing"
	StatusDone      AnalysisStatus = "done"
	StatusPartial   AnalysisStatus = "partial"
)

// CampaignAnalysis is the fingerprint row of the analysis cache. One row per
// distinct (campaign, hashtags) pair; immutable after the run completes, all
// derived result tables foreign-key to it.
type CampaignAnalysis struct {
	ID        uint `gorm:"primaryKey"`
	Campaign  string
	Hashtags  string
	Status    AnalysisStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CampaignAnalysis) TableName() string {
	return "campaign_analysis"
}

// ModuleRun records the terminal state of one analyzer module within a run,
// which is what makes a PARTIAL analysis discoverable.
type ModuleRun struct {
	ID                 uint `gorm:"primaryKey"`
	CampaignAnalysisID uint
	Module             string
	Succeeded          bool
	Error              string
	UpdatedAt          time.Time
}

func (ModuleRun) TableName() string {
	return "campaign_analysis_modules"
}

// NetworkMetricResult is one metric value for one time bucket of one network.
type NetworkMetricResult struct {
	ID                 uint `gorm:"primaryKey"`
	CampaignAnalysisID uint
	NetworkMetric      string
	Value              float64
	Date               time.Time
	NetworkType        NetworkType
}

func (NetworkMetricResult) TableName() string {
	return "network_metric_analysis_results"
}

// InfluenceResult is one position of an influence ranking. NetworkType is
// "retweet" or "reply" for per-network centrality rankings and "consensus"
// for the multi-criteria aggregate.
type InfluenceResult struct {
	ID                 uint `gorm:"primaryKey"`
	CampaignAnalysisID uint
	User               string
	RankPosition       int
	Appearances        int
	NetworkType        string
}

func (InfluenceResult) TableName() string {
	return "user_influence_analysis_results"
}

// NetworkEdgeResult is one edge of the exported visualization network,
// carrying the scorer attributes of both endpoints.
type NetworkEdgeResult struct {
	ID                 uint `gorm:"primaryKey"`
	CampaignAnalysisID uint
	Source             string
	Target             string
	Weight             float64
	SourceSentiment    float64
	SourceActivity     float64
	TargetSentiment    float64
	TargetActivity     float64
	NetworkType        NetworkType
}

func (NetworkEdgeResult) TableName() string {
	return "network_analysis_results"
}

// InteractionEdge is one aggregated source→target relationship of a given
// interaction kind, weighted by the number of underlying interactions.
type InteractionEdge struct {
	Source string
	Target string
	Weight float64
}

// UserCount ranks a user by some raw activity or engagement count.
type UserCount struct {
	User  string
	Count float64
}
