package metrics

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

const historySize = 100

// Collector 指标收集器
type Collector struct {
	metrics map[string]*Metric
	mu      sync.RWMutex
}

// Metric 指标，名称加固定标签集
type Metric struct {
	Name      string            `json:"name"`
	Type      string            `json:"type"`
	Value     float64           `json:"value"`
	Labels    map[string]string `json:"labels,omitempty"`
	History   []float64         `json:"history,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// NewCollector 创建指标收集器
func NewCollector() *Collector {
	return &Collector{
		metrics: make(map[string]*Metric),
	}
}

// IncCounter 增加计数器
func (c *Collector) IncCounter(name string, labels map[string]string) {
	c.AddCounter(name, 1, labels)
}

// AddCounter 增加计数器值
func (c *Collector) AddCounter(name string, value float64, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := buildKey(name, labels)
	if metric, exists := c.metrics[key]; exists {
		metric.Value += value
		metric.Timestamp = time.Now().Unix()
		return
	}
	c.metrics[key] = &Metric{
		Name:      name,
		Type:      "counter",
		Value:     value,
		Labels:    labels,
		Timestamp: time.Now().Unix(),
	}
}

// SetGauge 设置仪表值
func (c *Collector) SetGauge(name string, value float64, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.metrics[buildKey(name, labels)] = &Metric{
		Name:      name,
		Type:      "gauge",
		Value:     value,
		Labels:    labels,
		Timestamp: time.Now().Unix(),
	}
}

// ObserveHistogram 观察直方图
// 保留最近 100 个观测值，Value 为最新一次
func (c *Collector) ObserveHistogram(name string, value float64, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := buildKey(name, labels)
	if metric, exists := c.metrics[key]; exists {
		metric.Value = value
		metric.History = append(metric.History, value)
		if len(metric.History) > historySize {
			metric.History = metric.History[1:]
		}
		metric.Timestamp = time.Now().Unix()
		return
	}
	c.metrics[key] = &Metric{
		Name:      name,
		Type:      "histogram",
		Value:     value,
		Labels:    labels,
		History:   []float64{value},
		Timestamp: time.Now().Unix(),
	}
}

// RecordRequest 记录 HTTP 请求
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	labels := map[string]string{
		"method": method,
		"route":  route,
		"status": strconv.Itoa(status),
	}
	c.IncCounter("http_requests_total", labels)
	c.ObserveHistogram("http_request_duration_seconds", duration.Seconds(), labels)
}

// RecordInit 记录插件初始化
func (c *Collector) RecordInit(plugin string, ok bool, duration time.Duration) {
	labels := map[string]string{
		"plugin": plugin,
		"ok":     strconv.FormatBool(ok),
	}
	c.IncCounter("plugin_init_total", labels)
	c.ObserveHistogram("plugin_init_duration_seconds", duration.Seconds(), map[string]string{"plugin": plugin})
}

// RecordInvoke 记录工具调用，result 为 "ok" 或错误码
func (c *Collector) RecordInvoke(plugin, result string, duration time.Duration) {
	c.IncCounter("tool_invocations_total", map[string]string{
		"plugin": plugin,
		"result": result,
	})
	c.ObserveHistogram("tool_invocation_duration_seconds", duration.Seconds(), map[string]string{"plugin": plugin})
}

// buildKey 构建指标键，标签按键排序
func buildKey(name string, labels map[string]string) string {
	if len(labels) == 0 {
		return name
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(name)
	for _, k := range keys {
		b.WriteString(":" + k + "=" + labels[k])
	}
	return b.String()
}

// GetMetrics 获取所有指标（副本）
func (c *Collector) GetMetrics() map[string]Metric {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]Metric, len(c.metrics))
	for k, v := range c.metrics {
		m := *v
		m.History = append([]float64(nil), v.History...)
		result[k] = m
	}
	return result
}

// GetMetric 获取单个指标
func (c *Collector) GetMetric(name string, labels map[string]string) *Metric {
	c.mu.RLock()
	defer c.mu.RUnlock()

	metric, ok := c.metrics[buildKey(name, labels)]
	if !ok {
		return nil
	}
	m := *metric
	return &m
}

// Value returns the current value of one series, 0 when absent.
func (c *Collector) Value(name string, labels map[string]string) float64 {
	if m := c.GetMetric(name, labels); m != nil {
		return m.Value
	}
	return 0
}

// Reset 重置指标
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = make(map[string]*Metric)
}
