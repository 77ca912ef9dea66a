package handler

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"vtufest/backend/pkg/response"
)

// jsonObject 请求体的顶层字段，值保留原始 JSON，由调用方按需取用。
// 字段类型不符不会在解析阶段报错，交给后续业务校验。
type jsonObject map[string]json.RawMessage

// readObject 读取请求体为 JSON 对象；空请求体视为 {}。
// 非法 JSON 或非对象时写入 400 并返回 false
func readObject(c *gin.Context) (jsonObject, bool) {
	raw, err := c.GetRawData()
	if err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return nil, false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return jsonObject{}, true
	}

	var obj jsonObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return nil, false
	}
	if obj == nil {
		obj = jsonObject{}
	}
	return obj, true
}

// tag 取分发用的标签字段：字符串原样返回，其它非 null 值返回其 JSON 文本
func (o jsonObject) tag(key string) string {
	raw, ok := o[key]
	if !ok || string(raw) == "null" {
		return ""
	}
	if s, ok := jsonString(raw); ok {
		return s
	}
	return string(raw)
}

// str 取字符串字段，缺失或类型不符时返回空串
func (o jsonObject) str(key string) string {
	s, _ := jsonString(o[key])
	return s
}

// id 取整数 ID，接受 JSON 整数或数字字符串；其它情况返回 0
func (o jsonObject) id(key string) int64 {
	raw, ok := o[key]
	if !ok {
		return 0
	}
	text := string(raw)
	if s, isStr := jsonString(raw); isStr {
		text = strings.TrimSpace(s)
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func jsonString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
