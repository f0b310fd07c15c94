package utils

import (
	"strings"
	"unicode/utf8"
)

// MeasureFunc 测量一行文本的宽度（像素）
type MeasureFunc func(s string) float64

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - measure: 宽度测量函数
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 优先在空格处断行
//   - 单词本身超过最大宽度时按字符强制断行
func WrapText(textStr string, measure MeasureFunc, maxWidth float64) []string {
	if textStr == "" || measure == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	// 如果文本宽度小于最大宽度，直接返回
	if measure(textStr) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(textStr) {
		testLine := word
		if currentLine != "" {
			testLine = currentLine + " " + word
		}

		if measure(testLine) <= maxWidth {
			currentLine = testLine
			continue
		}

		if currentLine != "" {
			lines = append(lines, currentLine)
			currentLine = ""
		}

		// 单词本身超宽，按字符拆开
		if measure(word) > maxWidth {
			broken := breakWord(word, measure, maxWidth)
			lines = append(lines, broken[:len(broken)-1]...)
			currentLine = broken[len(broken)-1]
			continue
		}
		currentLine = word
	}

	// 添加最后一行
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	if len(lines) == 0 {
		lines = []string{textStr}
	}

	return lines
}

// breakWord 按字符把一个超宽单词拆成多段，至少返回一段
func breakWord(word string, measure MeasureFunc, maxWidth float64) []string {
	var parts []string
	current := ""

	for len(word) > 0 {
		r, size := utf8.DecodeRuneInString(word)
		char := string(r)
		word = word[size:]

		if current != "" && measure(current+char) > maxWidth {
			parts = append(parts, current)
			current = char
			continue
		}
		current += char
	}

	return append(parts, current)
}
