package storage

import "strings"

var objectNameReplacer = strings.NewReplacer(":", "_", "/", "_", "\\", "_")

// objectName maps a blob key to a flat object name, e.g. finance:05 -> finance_05.json
func objectName(key string) string {
	return objectNameReplacer.Replace(key) + ".json"
}
