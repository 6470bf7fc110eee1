package inmemdb

import (
	"sort"

	"github.com/trezcool/thk/core/course"
	"github.com/trezcool/thk/core/mentor"
	"github.com/trezcool/thk/core/student"
)

type courseRepository struct {
	db *table[course.Course]
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db.course}
}

func (repo *courseRepository) QueryCourses(f course.Filter) ([]course.Course, error) {
	return repo.db.query(f.Match), nil
}

func (repo *courseRepository) GetCourseByID(id string) (course.Course, error) {
	if c, ok := repo.db.get(id); ok {
		return c, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) CreateCourse(c course.Course) (course.Course, error) {
	repo.db.insert(c.ID, c)
	return c, nil
}

func (repo *courseRepository) UpdateCourse(c course.Course) (course.Course, error) {
	if !repo.db.update(c.ID, c) {
		return course.Course{}, course.ErrNotFound
	}
	return c, nil
}

func (repo *courseRepository) DeleteCoursesByID(ids ...string) error {
	repo.db.delete(ids...)
	return nil
}

type studentRepository struct {
	db *table[student.Student]
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) QueryStudents(f student.Filter) ([]student.Student, error) {
	return repo.db.query(f.Match), nil
}

func (repo *studentRepository) GetStudentByID(id string) (student.Student, error) {
	if s, ok := repo.db.get(id); ok {
		return s, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) CreateStudent(s student.Student) (student.Student, error) {
	repo.db.insert(s.ID, s)
	return s, nil
}

func (repo *studentRepository) UpdateStudent(s student.Student) (student.Student, error) {
	if !repo.db.update(s.ID, s) {
		return student.Student{}, student.ErrNotFound
	}
	return s, nil
}

func (repo *studentRepository) DeleteStudentsByID(ids ...string) error {
	repo.db.delete(ids...)
	return nil
}

type mentorRepository struct {
	db      *table[mentor.Mentor]
	reviews *table[mentor.Review]
}

var _ mentor.Repository = (*mentorRepository)(nil)

func NewMentorRepository(db *DB) mentor.Repository {
	return &mentorRepository{db: db.mentor, reviews: db.review}
}

func (repo *mentorRepository) QueryMentors(f mentor.Filter) ([]mentor.Mentor, error) {
	return repo.db.query(f.Match), nil
}

func (repo *mentorRepository) GetMentorByID(id string) (mentor.Mentor, error) {
	if m, ok := repo.db.get(id); ok {
		return m, nil
	}
	return mentor.Mentor{}, mentor.ErrNotFound
}

func (repo *mentorRepository) CreateMentor(m mentor.Mentor) (mentor.Mentor, error) {
	repo.db.insert(m.ID, m)
	return m, nil
}

func (repo *mentorRepository) UpdateMentor(m mentor.Mentor) (mentor.Mentor, error) {
	if !repo.db.update(m.ID, m) {
		return mentor.Mentor{}, mentor.ErrNotFound
	}
	return m, nil
}

func (repo *mentorRepository) DeleteMentorsByID(ids ...string) error {
	repo.db.delete(ids...)
	gone := make(map[string]bool, len(ids))
	for _, id := range ids {
		gone[id] = true
	}
	var orphans []string
	for _, r := range repo.reviews.query(func(r mentor.Review) bool { return gone[r.MentorID] }) {
		orphans = append(orphans, r.ID)
	}
	repo.reviews.delete(orphans...)
	return nil
}

func (repo *mentorRepository) QueryReviews(mentorID string) ([]mentor.Review, error) {
	reviews := repo.reviews.query(func(r mentor.Review) bool { return r.MentorID == mentorID })
	sort.SliceStable(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return reviews, nil
}

func (repo *mentorRepository) CreateReview(r mentor.Review) (mentor.Review, error) {
	repo.reviews.insert(r.ID, r)
	return r, nil
}
