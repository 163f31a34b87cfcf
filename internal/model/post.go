package model

// Post is the only entity of the service. The same struct is the GORM
// mapping of the posts table and the JSON body of the REST API.
type Post struct {
	ID    int     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title string  `json:"title" gorm:"type:text;not null" binding:"required"`
	Text  *string `json:"text" gorm:"type:text"`
}

func (Post) TableName() string {
	return "posts"
}

// PostPage is one page of posts plus the totals needed to navigate the rest.
type PostPage struct {
	Posts      []Post
	TotalPages int64
	TotalCount int64
}
