package service

import (
	"Vega_Tube/pkg/logger"
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
)

// 测试里不需要日志文件，把全局logger换成静音实例
func TestMain(m *testing.M) {
	logger.Log = logrus.New()
	logger.Log.SetOutput(io.Discard)
	os.Exit(m.Run())
}
