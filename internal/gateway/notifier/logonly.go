package notifier

import (
	"strings"

	"saka/internal/logger"
)

// LogOnly 在凭证缺失或为占位值时替代真实通知器：
// 把报告内容打进日志并返回成功，保持调用方行为一致。
type LogOnly struct{}

func (LogOnly) SendText(text string) error {
	logger.Infof("---- NOTIFICATION (log-only) ----")
	logger.InfoBlock(text)
	logger.Infof("---------------------------------")
	return nil
}

// IsPlaceholder 判断凭证是否为空或明显的占位值。
func IsPlaceholder(v string) bool {
	v = strings.ToUpper(strings.TrimSpace(v))
	if v == "" {
		return true
	}
	for _, marker := range []string{"YOUR_", "CHANGEME", "PLACEHOLDER", "XXX"} {
		if strings.Contains(v, marker) {
			return true
		}
	}
	return false
}

// Resolve 根据配置选择真实 Telegram 通知器或 log-only 退化模式。
func Resolve(enabled bool, botToken, chatID string) TextNotifier {
	if !enabled || IsPlaceholder(botToken) || IsPlaceholder(chatID) {
		logger.Warnf("notifier credentials absent or placeholder, running in log-only mode")
		return LogOnly{}
	}
	return NewTelegram(botToken, chatID)
}
