package rating

import (
	"time"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 评分范围
const (
	MinScore = 1
	MaxScore = 5
)

// ErrInvalidScore 评分超出[1,5]
var ErrInvalidScore = apperrors.New(apperrors.ErrCodeInvalidScore, "评分必须在1-5之间")

// Rating 用户对图书的一次评分
// 只保存原始分值,图书上的平均分由聚合重算
type Rating struct {
	ID        uint
	BookID    uint
	UserID    uint
	Score     int
	CreatedAt time.Time
}

// NewRating 创建评分
func NewRating(userID, bookID uint, score int) (*Rating, error) {
	if score < MinScore || score > MaxScore {
		return nil, ErrInvalidScore
	}
	return &Rating{
		BookID:    bookID,
		UserID:    userID,
		Score:     score,
		CreatedAt: time.Now(),
	}, nil
}

// Average 算术平均,没有评分时为0
func Average(ratings []*Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Score
	}
	return float64(sum) / float64(len(ratings))
}
