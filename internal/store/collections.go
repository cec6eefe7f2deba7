package store

// Collections bundles the configured accessor for every collection. It is
// built once at startup and passed to handlers explicitly instead of living
// in a package-level registry.
type Collections struct {
	Users           *Collection
	Admins          *Collection
	Ais             *Collection
	Genres          *Collection
	Movies          *Collection
	MoviesGenres    *Collection
	Ratings         *Collection
	Recommendations *Collection
}

func NewCollections(s Store) *Collections {
	return &Collections{
		Users:           NewCollection(s, "Users", "user_id"),
		Admins:          NewCollection(s, "Admins", "admin_id"),
		Ais:             NewCollection(s, "Ais", "ai_id"),
		Genres:          NewCollection(s, "Genres", "genre_id"),
		Movies:          NewCollection(s, "Movies", "movie_id"),
		MoviesGenres:    NewCollection(s, "MoviesGenres", "movie_genre_id"),
		Ratings:         NewCollection(s, "Ratings", "rating_id"),
		Recommendations: NewCollection(s, "Recommendations", "recommendation_id"),
	}
}
