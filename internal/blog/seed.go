package blog

import "time"

// Seed fills s with a few users, categories, tags and entries.
func Seed(s *Store) {
	joined := time.Date(2016, 11, 7, 9, 0, 0, 0, time.UTC)
	admin := s.AddUser(User{Username: "admin", FirstName: "Ada", LastName: "Admin", Email: "admin@example.com", IsStaff: true, IsActive: true, DateJoined: joined})
	bob := s.AddUser(User{Username: "bob", FirstName: "Bob", LastName: "Builder", Email: "bob@example.com", IsActive: true, DateJoined: joined.AddDate(0, 1, 0)})
	s.AddUser(User{Username: "carol", FirstName: "Carol", Email: "carol@example.com", DateJoined: joined.AddDate(0, 2, 0)})

	news, _ := s.SaveCategory(Category{UserID: admin.ID, Name: "News"})
	howto, _ := s.SaveCategory(Category{UserID: admin.ID, Name: "How To"})
	s.SaveCategory(Category{UserID: bob.ID, Name: "Travel"})

	golang, _ := s.SaveTag(Tag{UserID: admin.ID, Name: "Go"})
	gql, _ := s.SaveTag(Tag{UserID: admin.ID, Name: "GraphQL"})
	s.SaveTag(Tag{UserID: bob.ID, Name: "Hiking"})

	s.SaveEntry(Entry{UserID: admin.ID, Title: "Hello, World", Status: StatusPublished, Date: "2017-01-02", Sticky: true, CategoryID: news.ID, TagIDs: []int{golang.ID}, Body: "First post."})
	s.SaveEntry(Entry{UserID: admin.ID, Title: "Relay connections", Status: StatusPublished, Date: "2017-02-14", CategoryID: howto.ID, TagIDs: []int{gql.ID, golang.ID}})
	s.SaveEntry(Entry{UserID: bob.ID, Title: "Draft notes", Date: "2017-03-01", CategoryID: news.ID})
}
