package dto

type CreateCVRequest struct {
	FileName  string `json:"file_name" binding:"required"`
	FileURL   string `json:"file_url" binding:"required,url"`
	FileSize  *int64 `json:"file_size"`
	IsPrimary bool   `json:"is_primary"`
}

type UpdateCVRequest struct {
	FileName  *string `json:"file_name"`
	IsPrimary *bool   `json:"is_primary"`
}

type CVDTO struct {
	ID        string `json:"id"`
	UserUID   string `json:"user_uid"`
	FileName  string `json:"file_name"`
	FileURL   string `json:"file_url"`
	FileSize  *int64 `json:"file_size,omitempty"`
	IsPrimary bool   `json:"is_primary"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
