package logging

import (
	"io"
	"os"
)

// LoggingBuilder 日志构建器
type LoggingBuilder struct {
	out          io.Writer
	formatter    Formatter
	minimumLevel LogLevel
}

// NewLoggingBuilder 创建日志构建器
func NewLoggingBuilder() *LoggingBuilder {
	return &LoggingBuilder{
		out:          os.Stdout,
		formatter:    NewTextFormatter(),
		minimumLevel: LogLevelInfo,
	}
}

// SetMinimumLevel 设置最小日志级别
func (b *LoggingBuilder) SetMinimumLevel(level LogLevel) *LoggingBuilder {
	b.minimumLevel = level
	return b
}

// SetOutput 设置日志输出目标
func (b *LoggingBuilder) SetOutput(out io.Writer) *LoggingBuilder {
	b.out = out
	return b
}

// UseJSON 使用 JSON 格式输出
func (b *LoggingBuilder) UseJSON() *LoggingBuilder {
	b.formatter = NewJSONFormatter()
	return b
}

// UseFormatter 使用自定义格式化器
func (b *LoggingBuilder) UseFormatter(formatter Formatter) *LoggingBuilder {
	b.formatter = formatter
	return b
}

// Build 构建根日志记录器
func (b *LoggingBuilder) Build(category string) Logger {
	return NewWriterLogger(b.out, b.formatter, b.minimumLevel, category)
}
