package utils

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
)

var ErrUnsafePath = errors.New("unsafe path detected")

var dangerousChars = regexp.MustCompile(`[<>:"|?*\x00-\x1f\x7f]`)

// SafeJoin ต่อ path แบบ relative เข้ากับ base และกันไม่ให้หลุดออกนอก base
func SafeJoin(base, rel string) (string, error) {
	rel = strings.ReplaceAll(strings.TrimSpace(rel), "\\", "/")
	if rel == "" || filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") {
		return "", ErrUnsafePath
	}
	for _, part := range strings.Split(rel, "/") {
		if part == ".." {
			return "", ErrUnsafePath
		}
	}

	full := filepath.Join(base, filepath.FromSlash(rel))
	cleanBase := filepath.Clean(base)
	if full != cleanBase && !strings.HasPrefix(full, cleanBase+string(filepath.Separator)) {
		return "", ErrUnsafePath
	}
	return full, nil
}

// SanitizeFileName ทำให้ชื่อไฟล์ปลอดภัยสำหรับ header Content-Disposition และการเก็บ
func SanitizeFileName(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = dangerousChars.ReplaceAllString(filename, "_")
	filename = strings.TrimSpace(filename)

	if filename == "" || filename == "." || filename == ".." || filename == "/" {
		filename = "file"
	}
	return filename
}
