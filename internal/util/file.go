package util

import (
	"path/filepath"
	"strings"
)

// 资料上传允许的扩展名
var allowedDocumentExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".ppt":  true,
	".pptx": true,
}

// AllowedDocumentFile 校验文件扩展名是否在白名单内
func AllowedDocumentFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return allowedDocumentExtensions[ext]
}

// SanitizeFilename 去除路径成分，防止目录穿越
func SanitizeFilename(filename string) string {
	name := filepath.Base(filename)
	name = strings.ReplaceAll(name, "..", "")
	return strings.TrimSpace(name)
}
