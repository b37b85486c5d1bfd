package service

import (
	"math"
	"strings"
)

// 阅读速度按每分钟 200 词估算。
const wordsPerMinute = 200

// EstimateReadTime 根据正文词数估算阅读分钟数。
// override 为正的有限数值时优先生效（四舍五入后至少为 1）；
// 否则按空白分词统计词数，除以 200 向上取整，空正文返回 1。
func EstimateReadTime(content string, override float64) int {
	if override > 0 && !math.IsInf(override, 1) {
		minutes := int(math.Round(override))
		if minutes < 1 {
			minutes = 1
		}
		return minutes
	}

	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
