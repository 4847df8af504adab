package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// saveFormFile 把multipart表单里的一个文件落到本地临时目录，返回路径和清理函数。
// 字段不存在时返回空路径不报错，是否必填由调用方决定
func saveFormFile(c *gin.Context, field string) (string, func(), error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", func() {}, nil
	}

	localPath := filepath.Join(os.TempDir(), fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(fileHeader.Filename)))
	if err := c.SaveUploadedFile(fileHeader, localPath); err != nil {
		return "", func() {}, err
	}
	// 上传到媒体托管后本地副本就没用了
	cleanup := func() { os.Remove(localPath) }
	return localPath, cleanup, nil
}
