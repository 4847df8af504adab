package mediahost

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// CommandRunner 执行外部命令并返回stdout，做成函数类型方便测试时替换
type CommandRunner func(ctx context.Context, binary string, args ...string) ([]byte, error)

// Run 默认直接exec，测试里可以换成桩
var Run CommandRunner = func(ctx context.Context, binary string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, binary, args...).Output()
}

// ProbeDuration 用ffprobe探测本地视频文件的时长（秒）
// ffprobe的这组参数只输出format.duration一个裸数字，省去解析JSON
func (c *Client) ProbeDuration(ctx context.Context, localPath string) (float64, error) {
	execCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	out, err := Run(execCtx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		localPath,
	)
	if err != nil {
		return 0, fmt.Errorf("mediahost: ffprobe执行失败: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("mediahost: ffprobe输出解析失败: %w", err)
	}
	return duration, nil
}
