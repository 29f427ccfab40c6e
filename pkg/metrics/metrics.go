// Package metrics 基于Prometheus的指标定义
//
// 指标在包加载时通过promauto注册到默认Registry，
// 通过Handler()暴露给Prometheus抓取（默认路径/metrics）。
//
// 命名规范：
//   - Counter以_total结尾
//   - Histogram以单位结尾（_seconds）
//   - 标签只使用有限取值的维度（method、status、kind、result），不要用ID或出版社名
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookcatalog"

var (
	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，如/api/v1/books/:id）、status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP请求耗时（秒）",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_progress",
			Help:      "正在处理的HTTP请求数",
		},
	)

	// RatingsRecordedTotal 成功写入的评分数
	RatingsRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ratings_recorded_total",
			Help:      "评分写入总数",
		},
	)

	// RatingRecomputeDuration 评分写入+平均分重算的事务耗时
	RatingRecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rating_recompute_duration_seconds",
			Help:      "评分重算耗时（秒）",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// BooksRepricedTotal 折扣调价涉及的图书数
	BooksRepricedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "books_repriced_total",
			Help:      "折扣调价的图书总数",
		},
	)

	// DuplicatesRemovedTotal 去重删除的记录数
	// 标签：kind（author/book）
	DuplicatesRemovedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_removed_total",
			Help:      "去重删除的记录总数",
		},
		[]string{"kind"},
	)

	// CartTransfersTotal 心愿单→购物车转移次数
	// 标签：result（success/failure）
	CartTransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_transfers_total",
			Help:      "心愿单转入购物车次数",
		},
		[]string{"result"},
	)

	// EventsPublishedTotal 领域事件发布次数
	// 标签：event（事件名）、result（success/failure）
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "领域事件发布总数",
		},
		[]string{"event", "result"},
	)
)

// Handler /metrics端点
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveHTTPRequest 记录一次HTTP请求
func ObserveHTTPRequest(method, path string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveRatingRecorded 记录一次评分写入
func ObserveRatingRecorded(elapsed time.Duration) {
	RatingsRecordedTotal.Inc()
	RatingRecomputeDuration.Observe(elapsed.Seconds())
}

// AddRepriced 累加调价图书数
func AddRepriced(n int) {
	BooksRepricedTotal.Add(float64(n))
}

// AddDuplicatesRemoved 累加去重删除数
func AddDuplicatesRemoved(kind string, n int) {
	DuplicatesRemovedTotal.WithLabelValues(kind).Add(float64(n))
}

// IncCartTransfer 记录转移结果
func IncCartTransfer(err error) {
	CartTransfersTotal.WithLabelValues(result(err)).Inc()
}

// IncEventPublished 记录事件发布结果
func IncEventPublished(event string, err error) {
	EventsPublishedTotal.WithLabelValues(event, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
