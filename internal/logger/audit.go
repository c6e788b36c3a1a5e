package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// DataChangeAudit mô tả một thay đổi dữ liệu cần ghi audit
type DataChangeAudit struct {
	Collection    string   `json:"collection"`
	Operation     string   `json:"operation"`
	ResourceID    string   `json:"resource_id"`
	ChangedFields []string `json:"changed_fields"`
}

// LogDataChange ghi một thay đổi dữ liệu vào audit logger
func LogDataChange(audit DataChangeAudit) {
	GetAuditLogger().WithFields(logrus.Fields{
		"collection":     audit.Collection,
		"operation":      audit.Operation,
		"resource_id":    audit.ResourceID,
		"changed_fields": audit.ChangedFields,
		"timestamp":      time.Now().UnixMilli(),
	}).Info("Data changed")
}
