package logging

import (
	"encoding/json"
	"time"
)

// JSONFormatter JSON 格式化器
type JSONFormatter struct {
	TimestampFormat string
}

// NewJSONFormatter 创建 JSON 格式化器
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{
		TimestampFormat: time.RFC3339,
	}
}

// Format 格式化日志为单行 JSON
func (f *JSONFormatter) Format(entry *LogEntry) ([]byte, error) {
	m := make(map[string]any, len(entry.Fields)+4)
	m["time"] = entry.Time.Format(f.TimestampFormat)
	m["level"] = entry.Level.String()
	m["message"] = entry.Message
	if entry.Category != "" {
		m["category"] = entry.Category
	}
	for _, field := range entry.Fields {
		m[field.Key] = field.Value
	}

	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
