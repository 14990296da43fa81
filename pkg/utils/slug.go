package utils

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// slug 库默认把 & @ 译成单词、把引号直接删掉；这里统一当作分隔符
var symbolSeparators = map[string]string{
	"&":  " ",
	"@":  " ",
	"'":  " ",
	"\"": " ",
	"’":  " ",
}

// Slugify 名称 -> slug
// "Fabric Weight" -> "fabric-weight"；非字母数字连续字符合并为一个 "-"，首尾不留 "-"
func Slugify(name string) string {
	s := slug.Make(slug.Substitute(name, symbolSeparators))
	s = nonAlnumRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
