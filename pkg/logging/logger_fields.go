package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int32(key string, value int32) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Domain field helpers

func Component(name string) Field {
	return String("component", name)
}

func RunID(id string) Field {
	return String("run_id", id)
}

func LevelNum(level int) Field {
	return Int("level", level)
}

func Vertices(n int32) Field {
	return Int32("vertices", n)
}

func Edges(m int32) Field {
	return Int32("edges", m)
}

func Communities(k int32) Field {
	return Int32("communities", k)
}

func Modularity(q float64) Field {
	return Float64("modularity", q)
}

func Moves(n int) Field {
	return Int("moves", n)
}

func Sweeps(n int) Field {
	return Int("sweeps", n)
}

func Workers(n int) Field {
	return Int("workers", n)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
