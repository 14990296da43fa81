package dto

import "encoding/json"

// SetSettingRequest value 可以是任意 JSON，缺省为 null
type SetSettingRequest struct {
	Key   string          `json:"key" binding:"required"`
	Value json.RawMessage `json:"value" swaggertype:"object"`
}
