package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gonewx/drillship/pkg/embedded"
)

// readConfigFile 读取配置文件
// "data/" 开头且 embedded 已初始化时从嵌入 FS 读取，否则从磁盘读取（测试 fixture、工具的 --data 参数）
func readConfigFile(path string) ([]byte, error) {
	if useEmbedded(path) {
		data, err := embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("无法读取嵌入配置文件 %s: %w", path, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取配置文件 %s: %w", path, err)
	}
	return data, nil
}

// globConfigFiles 列出目录下所有 YAML 文件（已排序）
func globConfigFiles(dir string) ([]string, error) {
	pattern := strings.TrimSuffix(filepath.ToSlash(dir), "/") + "/*.yaml"
	if useEmbedded(dir) {
		return embedded.Glob(pattern)
	}
	return filepath.Glob(pattern)
}

func useEmbedded(path string) bool {
	p := strings.TrimPrefix(filepath.ToSlash(path), "./")
	return embedded.IsInitialized() && strings.HasPrefix(p, "data/")
}

// vec3 把 YAML 中的 [x, y] 或 [x, y, z] 数组转换为三个分量
func vec3(values []float64, field string) (x, y, z float64, err error) {
	switch len(values) {
	case 2:
		return values[0], values[1], 0, nil
	case 3:
		return values[0], values[1], values[2], nil
	default:
		return 0, 0, 0, fmt.Errorf("%s 需要 2 或 3 个分量，实际 %d 个", field, len(values))
	}
}
