// Package dto - DTO cho API tra cứu bảng tổng hợp tags.
package dto

import "doc_tagging/internal/tagging"

// TagsResponse danh sách tag của một loại tài liệu
type TagsResponse struct {
	Type       string   `json:"type"`
	Collection string   `json:"collection"`
	Tags       []string `json:"tags"`
}

// TagWeightsResponse danh sách (tag, số tài liệu) của một loại tài liệu
type TagWeightsResponse struct {
	Type       string              `json:"type"`
	Collection string              `json:"collection"`
	Weights    []tagging.TagWeight `json:"weights"`
}

// TaggableResponse mô tả cấu hình tagging đang áp dụng cho một loại
type TaggableResponse struct {
	Type               string                 `json:"type"`
	ParentType         string                 `json:"parentType,omitempty"`
	Collection         string                 `json:"collection"`
	AggregationTarget  string                 `json:"aggregationCollection"`
	TagsField          string                 `json:"tagsField"`
	Separator          string                 `json:"separator"`
	AggregationEnabled bool                   `json:"aggregationEnabled"`
	AggregationOptions map[string]interface{} `json:"aggregationOptions"`
}
