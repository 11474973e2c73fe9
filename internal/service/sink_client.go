package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"schoolform-data/internal/domain"
)

// DeliveryOutcome 一次投递尝试的结果分类
type DeliveryOutcome int

const (
	DeliveryDelivered DeliveryOutcome = iota
	DeliveryRejected
	DeliveryNetworkError
)

// DeliveryResult 投递结果 + 供展示的人类可读消息
type DeliveryResult struct {
	Outcome DeliveryOutcome
	Message string
}

// Deliverer 远端投递传输层
// A timeout must come back as DeliveryNetworkError, never hang the caller.
type Deliverer interface {
	Deliver(ctx context.Context, item domain.OutboxItem) DeliveryResult
}

// Connectivity 设备在线信号（同步前整体检查一次）
type Connectivity interface {
	Online(ctx context.Context) bool
}

// sinkResponse sink 的应答体（成功与失败都带 message）
type sinkResponse struct {
	Message string `json:"message"`
}

// SinkClient 学校档案 sink 的 HTTP 客户端
// Implements both Deliverer and Connectivity.
type SinkClient struct {
	httpClient *resty.Client
	savePath   string
	logger     *zap.Logger
}

// NewSinkClient 创建 sink 客户端
func NewSinkClient(baseURL, savePath string, timeout time.Duration, logger *zap.Logger) *SinkClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &SinkClient{
		httpClient: client,
		savePath:   savePath,
		logger:     logger,
	}
}

// Deliver 将一条 outbox 提交投递到其目的端点
// Transport failures (including timeouts) map to DeliveryNetworkError, a
// non-2xx response to DeliveryRejected with the sink's message.
func (c *SinkClient) Deliver(ctx context.Context, item domain.OutboxItem) DeliveryResult {
	dest := item.Destination
	if dest == "" {
		dest = c.savePath
	}

	var ack sinkResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(json.RawMessage(item.Payload)).
		SetResult(&ack).
		SetError(&ack).
		Post(dest)

	if err != nil {
		c.logger.Warn("sink delivery failed",
			zap.String("item_id", item.ID),
			zap.String("school_id", item.SchoolID),
			zap.Error(err),
		)
		return DeliveryResult{Outcome: DeliveryNetworkError, Message: err.Error()}
	}

	if resp.IsSuccess() {
		return DeliveryResult{Outcome: DeliveryDelivered, Message: ack.Message}
	}

	msg := ack.Message
	if msg == "" {
		msg = resp.Status()
	}
	c.logger.Warn("sink rejected submission",
		zap.String("item_id", item.ID),
		zap.String("school_id", item.SchoolID),
		zap.Int("status_code", resp.StatusCode()),
		zap.String("message", msg),
	)
	return DeliveryResult{Outcome: DeliveryRejected, Message: msg}
}

// Online 探测 sink 是否可达（短超时）
func (c *SinkClient) Online(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	resp, err := c.httpClient.R().SetContext(probeCtx).Get("/healthz")
	return err == nil && resp.IsSuccess()
}
