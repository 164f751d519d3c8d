package logging

import (
	"io"
	"os"
	"sync"
	"time"
)

// LogLevel 日志级别
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// String 返回日志级别的字符串表示
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Field 日志字段
type Field struct {
	Key   string
	Value any
}

// Logger 日志接口
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)
	Log(level LogLevel, msg string, fields ...Field)
	WithFields(fields ...Field) Logger
	WithCategory(category string) Logger
}

// writerLogger 将格式化后的日志写入 io.Writer
type writerLogger struct {
	mu        *sync.Mutex
	out       io.Writer
	formatter Formatter
	minLevel  LogLevel
	category  string
	fields    []Field
	exit      func(int) // Fatal 的退出钩子，测试中可替换
}

// NewWriterLogger 创建写入指定 Writer 的日志记录器
func NewWriterLogger(out io.Writer, formatter Formatter, minLevel LogLevel, category string) Logger {
	return &writerLogger{
		mu:        &sync.Mutex{},
		out:       out,
		formatter: formatter,
		minLevel:  minLevel,
		category:  category,
		exit:      os.Exit,
	}
}

func (l *writerLogger) Debug(msg string, fields ...Field) { l.Log(LogLevelDebug, msg, fields...) }
func (l *writerLogger) Info(msg string, fields ...Field)  { l.Log(LogLevelInfo, msg, fields...) }
func (l *writerLogger) Warn(msg string, fields ...Field)  { l.Log(LogLevelWarn, msg, fields...) }
func (l *writerLogger) Error(msg string, fields ...Field) { l.Log(LogLevelError, msg, fields...) }

func (l *writerLogger) Fatal(msg string, fields ...Field) {
	l.Log(LogLevelFatal, msg, fields...)
	l.exit(1)
}

func (l *writerLogger) Log(level LogLevel, msg string, fields ...Field) {
	if level < l.minLevel {
		return
	}

	entry := &LogEntry{
		Time:     time.Now(),
		Level:    level,
		Category: l.category,
		Message:  msg,
		Fields:   append(append([]Field(nil), l.fields...), fields...),
	}

	data, err := l.formatter.Format(entry)
	if err != nil {
		return
	}

	l.mu.Lock()
	_, _ = l.out.Write(data)
	l.mu.Unlock()
}

func (l *writerLogger) WithFields(fields ...Field) Logger {
	clone := *l
	clone.fields = append(append([]Field(nil), l.fields...), fields...)
	return &clone
}

func (l *writerLogger) WithCategory(category string) Logger {
	clone := *l
	clone.category = category
	return &clone
}

// NopLogger 丢弃所有日志的记录器，用于测试和可选依赖
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field)         {}
func (NopLogger) Info(string, ...Field)          {}
func (NopLogger) Warn(string, ...Field)          {}
func (NopLogger) Error(string, ...Field)         {}
func (NopLogger) Fatal(string, ...Field)         {}
func (NopLogger) Log(LogLevel, string, ...Field) {}
func (l NopLogger) WithFields(...Field) Logger   { return l }
func (l NopLogger) WithCategory(string) Logger   { return l }
