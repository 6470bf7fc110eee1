// Package blog is the community feed: posts, likes and comments.
package blog

import (
	"sync"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/thk/core"
	"github.com/trezcool/thk/core/user"
)

var ErrNotFound = errors.New("post not found")

type Category string

const (
	CategoryQuestion   Category = "Question"
	CategoryKnowledge  Category = "Knowledge"
	CategoryDiscussion Category = "Discussion"

	categoryTag  = "blogcategory"
	categoryText = "{0} must be one of Question, Knowledge or Discussion"
)

var Categories = []Category{CategoryQuestion, CategoryKnowledge, CategoryDiscussion}

func (c Category) IsValid() bool {
	return c == CategoryQuestion || c == CategoryKnowledge || c == CategoryDiscussion
}

type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"-"`
	Author    string    `json:"author"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar"`
	Content   string    `json:"content"`
	Category  Category  `json:"category"`
	Likes     int       `json:"likes"`
	LikedBy   []string  `json:"-"` // user IDs
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	IsLiked   bool      `json:"is_liked"` // for the viewer
}

func (p Post) likedBy(userID string) (int, bool) {
	for i, id := range p.LikedBy {
		if id == userID {
			return i, true
		}
	}
	return -1, false
}

type NewPost struct {
	Content  string   `json:"content" validate:"required,notblank,max=5000"`
	Category Category `json:"category" validate:"omitempty,blogcategory"`
}

func (np *NewPost) Validate(svc *Service) error {
	np.Content = core.CleanString(np.Content)
	return svc.validate.Struct(np)
}

type NewComment struct {
	Content string `json:"content" validate:"required,notblank,max=2000"`
}

func (nc *NewComment) Validate(svc *Service) error {
	nc.Content = core.CleanString(nc.Content)
	return svc.validate.Struct(nc)
}

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(categoryTag, func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).IsValid()
	})
	core.RegisterCustomTranslation(validate, translator, categoryTag, categoryText)
}

type (
	Repository interface {
		// QueryPosts returns the posts of category (all when empty), newest first.
		QueryPosts(category Category) ([]Post, error)
		GetPostByID(id string) (Post, error)
		CreatePost(p Post) (Post, error)
		UpdatePost(p Post) (Post, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
		mu       sync.Mutex // serialises read-modify-write of posts
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

// List returns the feed as seen by viewerID.
func (svc *Service) List(category Category, viewerID string) ([]Post, error) {
	posts, err := svc.repo.QueryPosts(category)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		_, posts[i].IsLiked = posts[i].likedBy(viewerID)
	}
	return posts, nil
}

func (svc *Service) Create(author user.User, np NewPost) (Post, error) {
	category := np.Category
	if category == "" {
		category = CategoryDiscussion
	}
	return svc.repo.CreatePost(Post{
		ID:        uuid.New().String(),
		AuthorID:  author.ID,
		Author:    author.Name,
		Role:      string(author.Role),
		Avatar:    author.Avatar,
		Content:   np.Content,
		Category:  category,
		Comments:  []Comment{},
		CreatedAt: time.Now().UTC(),
	})
}

// ToggleLike likes the post for userID, or unlikes it if already liked.
func (svc *Service) ToggleLike(postID, userID string) (Post, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	p, err := svc.repo.GetPostByID(postID)
	if err != nil {
		return Post{}, err
	}
	if i, ok := p.likedBy(userID); ok {
		p.LikedBy = append(p.LikedBy[:i:i], p.LikedBy[i+1:]...)
		p.Likes--
	} else {
		p.LikedBy = append(p.LikedBy, userID)
		p.Likes++
	}
	if p, err = svc.repo.UpdatePost(p); err != nil {
		return Post{}, err
	}
	_, p.IsLiked = p.likedBy(userID)
	return p, nil
}

func (svc *Service) AddComment(postID string, author user.User, nc NewComment) (Post, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	p, err := svc.repo.GetPostByID(postID)
	if err != nil {
		return Post{}, err
	}
	p.Comments = append(p.Comments, Comment{
		ID:        uuid.New().String(),
		Author:    author.Name,
		Role:      string(author.Role),
		Avatar:    author.Avatar,
		Content:   nc.Content,
		CreatedAt: time.Now().UTC(),
	})
	if p, err = svc.repo.UpdatePost(p); err != nil {
		return Post{}, err
	}
	_, p.IsLiked = p.likedBy(author.ID)
	return p, nil
}

// Seed returns the demo feed relative to now.
func Seed(now time.Time) []Post {
	return []Post{
		{
			ID:       "1",
			Author:   "Dr. Sarah Connor",
			Role:     "Mentor",
			Avatar:   "https://picsum.photos/id/64/100/100",
			Content:  "Just uploaded a new module on Advanced Neural Networks! Check it out in the Data Science Fundamentals course. Let me know if you have any questions about backpropagation.",
			Category: CategoryKnowledge,
			Likes:    45,
			Comments: []Comment{{
				ID:        "c1",
				Author:    "Alice Johnson",
				Role:      string(user.RoleUser),
				Avatar:    user.Avatar("Alice Johnson"),
				Content:   "This is exactly what I needed! The previous visualization was a bit tricky.",
				CreatedAt: now.Add(-time.Hour),
			}},
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:        "2",
			Author:    "Bob Smith",
			Role:      string(user.RoleUser),
			Avatar:    user.Avatar("Bob Smith"),
			Content:   "Can anyone recommend good resources for learning Typography rules? I'm struggling with font pairings for my final project.",
			Category:  CategoryQuestion,
			Likes:     12,
			Comments:  []Comment{},
			CreatedAt: now.Add(-5 * time.Hour),
		},
		{
			ID:        "3",
			Author:    "Maya Angelou",
			Role:      "Mentor",
			Avatar:    "https://picsum.photos/id/66/100/100",
			Content:   "Writing Tip of the Day: Read your work aloud. If you stumble over a sentence, your reader will too. Simplicity is the ultimate sophistication.",
			Category:  CategoryDiscussion,
			Likes:     89,
			Comments:  []Comment{},
			CreatedAt: now.Add(-24 * time.Hour),
		},
	}
}
