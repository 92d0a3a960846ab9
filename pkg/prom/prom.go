package prom

import (
	"fmt"
	"sync"

	"github.com/nimasrn/finance-etl/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	SystemLoad = "load"
)
const (
	MetricBatchDuration = "batch_duration_seconds"
	MetricRowsInserted  = "rows_inserted_total"
	MetricRowsIgnored   = "rows_ignored_total"
	MetricRowsSkipped   = "rows_skipped_total"
	MetricBatchFailures = "batch_failures_total"
)

const (
	TypeCounter      = "counter"
	TypeCounterVec   = "counterVec"
	TypeHistogram    = "histogram"
	TypeHistogramVec = "histogramVec"
	TypeGaugeVec     = "gaugeVec"
)

var lockCreateMetricLock = &sync.Mutex{}
var namespace = "none"

var MetricSystemEnabled = false

var registry = prometheus.NewRegistry()

var MetricCollectionCounters = make(map[string]prometheus.Counter)
var MetricCollectionCounterVec = make(map[string]*prometheus.CounterVec)
var MetricCollectionGaugeVec = make(map[string]*prometheus.GaugeVec)
var MetricCollectionHistogram = make(map[string]prometheus.Histogram)
var MetricCollectionHistogramVec = make(map[string]*prometheus.HistogramVec)

var defaultLabels prometheus.Labels

// Create resets the registry and registers the load metrics. Calling it again
// starts from an empty registry, so every run reports only its own numbers.
func Create(host string, env string, nameSpace string) error {
	lockCreateMetricLock.Lock()
	registry = prometheus.NewRegistry()
	MetricCollectionCounters = make(map[string]prometheus.Counter)
	MetricCollectionCounterVec = make(map[string]*prometheus.CounterVec)
	MetricCollectionGaugeVec = make(map[string]*prometheus.GaugeVec)
	MetricCollectionHistogram = make(map[string]prometheus.Histogram)
	MetricCollectionHistogramVec = make(map[string]*prometheus.HistogramVec)
	lockCreateMetricLock.Unlock()

	defaultLabels = make(prometheus.Labels)
	defaultLabels["env"] = env
	defaultLabels["instance"] = host
	namespace = nameSpace
	MetricSystemEnabled = true

	var err error
	hasError := func(e error) {
		if err == nil && e != nil {
			err = e
		}
	}

	hasError(createHistogramVec(SystemLoad, MetricBatchDuration, []string{"table"}))
	hasError(createCounterVec(SystemLoad, MetricRowsInserted, []string{"table"}))
	hasError(createCounterVec(SystemLoad, MetricRowsIgnored, []string{"table"}))
	hasError(createCounterVec(SystemLoad, MetricRowsSkipped, []string{"table", "reason"}))
	hasError(createCounterVec(SystemLoad, MetricBatchFailures, []string{"table"}))

	return err
}

func CreateMetric(metricType, metricSubsystem, metricName string, labelsValues ...string) error {
	switch metricType {
	case TypeCounter:
		return createCounter(metricSubsystem, metricName)
	case TypeCounterVec:
		return createCounterVec(metricSubsystem, metricName, labelsValues)
	case TypeHistogram:
		return createHistogram(metricSubsystem, metricName)
	case TypeHistogramVec:
		return createHistogramVec(metricSubsystem, metricName, labelsValues)
	case TypeGaugeVec:
		return createGaugeVec(metricSubsystem, metricName, labelsValues)
	}
	return fmt.Errorf("metric type %s is not defined", metricType)
}

// Gatherer exposes the current registry.
func Gatherer() prometheus.Gatherer {
	return registry
}

// Push sends the current registry to a Pushgateway under job, grouped by run.
func Push(url, job, runID string) error {
	if !MetricSystemEnabled || url == "" {
		return nil
	}
	return push.New(url, job).
		Gatherer(registry).
		Grouping("run_id", runID).
		Push()
}

func createCounter(subsystem, name string) error {
	lockCreateMetricLock.Lock()
	defer lockCreateMetricLock.Unlock()
	MetricCollectionCounters[subsystem+name] = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        name,
		ConstLabels: defaultLabels,
	})
	return registry.Register(MetricCollectionCounters[subsystem+name])
}

func createCounterVec(subsystem, name string, labels []string) error {
	lockCreateMetricLock.Lock()
	defer lockCreateMetricLock.Unlock()
	MetricCollectionCounterVec[subsystem+name] = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        name,
		ConstLabels: defaultLabels,
	}, labels)
	return registry.Register(MetricCollectionCounterVec[subsystem+name])
}

func createHistogram(subsystem, name string) error {
	lockCreateMetricLock.Lock()
	defer lockCreateMetricLock.Unlock()
	MetricCollectionHistogram[subsystem+name] = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        name,
		ConstLabels: defaultLabels,
		Buckets:     prometheus.DefBuckets,
	})
	return registry.Register(MetricCollectionHistogram[subsystem+name])
}

func createHistogramVec(subsystem, name string, labels []string) error {
	lockCreateMetricLock.Lock()
	defer lockCreateMetricLock.Unlock()
	MetricCollectionHistogramVec[subsystem+name] = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        name,
		ConstLabels: defaultLabels,
		Buckets:     []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300},
	}, labels)
	return registry.Register(MetricCollectionHistogramVec[subsystem+name])
}

func createGaugeVec(subsystem, name string, labels []string) error {
	lockCreateMetricLock.Lock()
	defer lockCreateMetricLock.Unlock()

	MetricCollectionGaugeVec[subsystem+name] = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        name,
		ConstLabels: defaultLabels,
	}, labels)
	return registry.Register(MetricCollectionGaugeVec[subsystem+name])
}

func IncCounter(subsystem, name string) {
	AddCounter(subsystem, name, 1)
}

func AddCounter(subsystem, name string, number float64) {
	if MetricSystemEnabled == false {
		return
	}
	if v, ok := MetricCollectionCounters[subsystem+name]; ok {
		v.Add(number)
		return
	}
	logger.Warn("[metrics] counter not found", "subsystem", subsystem, "name", name)
}

func AddGaugeVec(subsystem, name string, num float64, labelValues ...string) {
	if MetricSystemEnabled == false {
		return
	}
	if v, ok := MetricCollectionGaugeVec[subsystem+name]; ok {
		v.WithLabelValues(labelValues...).Add(num)
		return
	}
	logger.Warn("[metrics] gauge not found", "subsystem", subsystem, "name", name)
}

func AddCounterVec(subsystem, name string, num float64, labelValues ...string) {
	if MetricSystemEnabled == false {
		return
	}
	if v, ok := MetricCollectionCounterVec[subsystem+name]; ok {
		v.WithLabelValues(labelValues...).Add(num)
		return
	}
	logger.Warn("[metrics] counter vec not found", "subsystem", subsystem, "name", name)
}

func IncCounterVec(subsystem, name string, labelValues ...string) {
	AddCounterVec(subsystem, name, 1, labelValues...)
}

func AddHistogram(subsystem, name string, number float64) {
	if MetricSystemEnabled == false {
		return
	}
	if v, ok := MetricCollectionHistogram[subsystem+name]; ok {
		v.Observe(number)
		return
	}
	logger.Warn("[metrics] histogram not found", "subsystem", subsystem, "name", name)
}

func AddHistogramVec(subsystem, name string, number float64, labelValues ...string) {
	if MetricSystemEnabled == false {
		return
	}
	if v, ok := MetricCollectionHistogramVec[subsystem+name]; ok {
		v.WithLabelValues(labelValues...).Observe(number)
		return
	}
	logger.Warn("[metrics] histogram vec not found", "subsystem", subsystem, "name", name)
}

func ObserveBatch(table string, seconds float64, inserted, ignored int64, failed bool) {
	AddHistogramVec(SystemLoad, MetricBatchDuration, seconds, table)
	AddCounterVec(SystemLoad, MetricRowsInserted, float64(inserted), table)
	AddCounterVec(SystemLoad, MetricRowsIgnored, float64(ignored), table)
	if failed {
		IncCounterVec(SystemLoad, MetricBatchFailures, table)
	}
}

func AddSkippedRows(table, reason string, n int) {
	AddCounterVec(SystemLoad, MetricRowsSkipped, float64(n), table, reason)
}
