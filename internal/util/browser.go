package util

import (
	"errors"
	"os/exec"
	"runtime"
)

// startCommand 启动外部命令但不等待退出
var startCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// browserCommands 按平台返回打开 URL 的候选命令，依次尝试
func browserCommands(goos, url string) [][]string {
	switch goos {
	case "windows":
		// rundll32 在 Windows 7 上比 cmd /c start 稳定
		return [][]string{
			{"rundll32", "url.dll,FileProtocolHandler", url},
			{"explorer", url},
		}
	case "darwin":
		return [][]string{{"open", url}}
	default:
		return [][]string{
			{"xdg-open", url},
			{"google-chrome", url},
			{"firefox", url},
			{"chromium-browser", url},
			{"sensible-browser", url},
		}
	}
}

// OpenBrowser 用默认浏览器打开仪表盘，主命令失败时尝试备选命令
func OpenBrowser(url string) error {
	var errs []error
	for _, cmd := range browserCommands(runtime.GOOS, url) {
		err := startCommand(cmd[0], cmd[1:]...)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
