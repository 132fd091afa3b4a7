package metrics

import (
	"sync/atomic"
)

type Metrics struct {
	importsTotal      int64
	finishesTotal     int64
	statsRequests     int64
	catalogErrors     int64
	activeConnections int64
}

var global = &Metrics{}

func IncrementImports() {
	atomic.AddInt64(&global.importsTotal, 1)
}

func IncrementFinishes() {
	atomic.AddInt64(&global.finishesTotal, 1)
}

func IncrementStatsRequests() {
	atomic.AddInt64(&global.statsRequests, 1)
}

func IncrementCatalogErrors() {
	atomic.AddInt64(&global.catalogErrors, 1)
}

func SetActiveConnections(count int64) {
	atomic.StoreInt64(&global.activeConnections, count)
}

func GetImports() int64 {
	return atomic.LoadInt64(&global.importsTotal)
}

func GetFinishes() int64 {
	return atomic.LoadInt64(&global.finishesTotal)
}

func GetStatsRequests() int64 {
	return atomic.LoadInt64(&global.statsRequests)
}

func GetCatalogErrors() int64 {
	return atomic.LoadInt64(&global.catalogErrors)
}

func GetActiveConnections() int64 {
	return atomic.LoadInt64(&global.activeConnections)
}

func Reset() {
	atomic.StoreInt64(&global.importsTotal, 0)
	atomic.StoreInt64(&global.finishesTotal, 0)
	atomic.StoreInt64(&global.statsRequests, 0)
	atomic.StoreInt64(&global.catalogErrors, 0)
	atomic.StoreInt64(&global.activeConnections, 0)
}
