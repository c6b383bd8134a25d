package model

import "infinite-ideas-hub/internal/shared/result"

var (
	ErrBlogIDRequired = result.Invalid("blogId is required")
	ErrBlogNotFound   = result.NotFound("blog not found")
)
