package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stagebook/stagebook/internal/model"
)

// GenreNames is the fixed genre vocabulary offered by the venue and artist forms.
var GenreNames = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk", "Funk",
	"Hip-Hop", "Heavy Metal", "Instrumental", "Jazz", "Musical Theatre", "Pop",
	"Punk", "R&B", "Reggae", "Rock n Roll", "Soul", "Swing", "Other",
}

// CategoryTypes are the trivia categories in id order.
var CategoryTypes = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

// Seed fills empty tables with the genre and category vocabularies and a
// small set of sample venues, artists, shows and questions.  Tables that
// already hold rows are left untouched, so Seed can run on every deploy.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedGenres(tx); err != nil {
			return err
		}
		if err := seedCategories(tx); err != nil {
			return err
		}
		if err := seedListings(tx); err != nil {
			return err
		}
		return seedQuestions(tx)
	})
}

func isEmpty(tx *gorm.DB, m interface{}) (bool, error) {
	var n int64
	if err := tx.Model(m).Count(&n).Error; err != nil {
		return false, err
	}
	return n == 0, nil
}

func seedGenres(tx *gorm.DB) error {
	empty, err := isEmpty(tx, &model.Genre{})
	if err != nil || !empty {
		return err
	}
	genres := make([]model.Genre, 0, len(GenreNames))
	for _, name := range GenreNames {
		genres = append(genres, model.Genre{Name: name})
	}
	if err := tx.Create(&genres).Error; err != nil {
		return fmt.Errorf("seed genres: %w", err)
	}
	return nil
}

func seedCategories(tx *gorm.DB) error {
	empty, err := isEmpty(tx, &model.Category{})
	if err != nil || !empty {
		return err
	}
	cats := make([]model.Category, 0, len(CategoryTypes))
	for _, t := range CategoryTypes {
		cats = append(cats, model.Category{Type: t})
	}
	if err := tx.Create(&cats).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}

func genresByName(tx *gorm.DB, names ...string) ([]model.Genre, error) {
	var gs []model.Genre
	err := tx.Where("name IN ?", names).Find(&gs).Error
	return gs, err
}

func seedListings(tx *gorm.DB) error {
	empty, err := isEmpty(tx, &model.Venue{})
	if err != nil || !empty {
		return err
	}

	venues := []struct {
		v      model.Venue
		genres []string
	}{
		{model.Venue{
			Name: "The Musical Hop", City: "San Francisco", State: "CA", Address: "1015 Folsom Street",
			Phone: "123-123-1234", WebsiteLink: "https://www.themusicalhop.com",
			FacebookLink: "https://www.facebook.com/TheMusicalHop", SeekingTalent: true,
			SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
			ImageLink:          "https://images.unsplash.com/photo-1543900694-133f37abaaa5?auto=format&fit=crop&w=400&q=60",
		}, []string{"Jazz", "Reggae", "Swing", "Classical", "Folk"}},
		{model.Venue{
			Name: "The Dueling Pianos Bar", City: "New York", State: "NY", Address: "335 Delancey Street",
			Phone: "914-003-1132", WebsiteLink: "https://www.theduelingpianos.com",
			FacebookLink: "https://www.facebook.com/theduelingpianos",
			ImageLink:    "https://images.unsplash.com/photo-1497032205916-ac775f0649ae?auto=format&fit=crop&w=750&q=80",
		}, []string{"Classical", "R&B", "Hip-Hop"}},
		{model.Venue{
			Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA", Address: "34 Whiskey Moore Ave",
			Phone: "415-000-1234", WebsiteLink: "https://www.parksquarelivemusicandcoffee.com",
			FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
			ImageLink:    "https://images.unsplash.com/photo-1485686531765-ba63b07845a7?auto=format&fit=crop&w=747&q=80",
		}, []string{"Rock n Roll", "Jazz", "Classical", "Folk"}},
	}
	artists := []struct {
		a      model.Artist
		genres []string
	}{
		{model.Artist{
			Name: "Guns N Petals", City: "San Francisco", State: "CA", Phone: "326-123-5000",
			WebsiteLink: "https://www.gunsnpetalsband.com", FacebookLink: "https://www.facebook.com/GunsNPetals",
			SeekingVenue: true, SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
			ImageLink: "https://images.unsplash.com/photo-1549213783-8284d0336c4f?auto=format&fit=crop&w=300&q=80",
		}, []string{"Rock n Roll"}},
		{model.Artist{
			Name: "Matt Quevedo", City: "New York", State: "NY", Phone: "300-400-5000",
			FacebookLink: "https://www.facebook.com/mattquevedo923251523",
			ImageLink:    "https://images.unsplash.com/photo-1495223153807-b916f75de8c5?auto=format&fit=crop&w=334&q=80",
		}, []string{"Jazz"}},
		{model.Artist{
			Name: "The Wild Sax Band", City: "San Francisco", State: "CA", Phone: "432-325-5432",
			ImageLink: "https://images.unsplash.com/photo-1558369981-f9ca78462e61?auto=format&fit=crop&w=794&q=80",
		}, []string{"Jazz", "Classical"}},
	}

	for i := range venues {
		gs, err := genresByName(tx, venues[i].genres...)
		if err != nil {
			return err
		}
		venues[i].v.Genres = gs
		if err := tx.Omit("Genres.*").Create(&venues[i].v).Error; err != nil {
			return fmt.Errorf("seed venue %q: %w", venues[i].v.Name, err)
		}
	}
	for i := range artists {
		gs, err := genresByName(tx, artists[i].genres...)
		if err != nil {
			return err
		}
		artists[i].a.Genres = gs
		if err := tx.Omit("Genres.*").Create(&artists[i].a).Error; err != nil {
			return fmt.Errorf("seed artist %q: %w", artists[i].a.Name, err)
		}
	}

	at := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t.UTC()
	}
	shows := []model.Show{
		{ArtistID: artists[0].a.ID, VenueID: venues[0].v.ID, StartTime: at("2019-05-21T21:30:00Z")},
		{ArtistID: artists[1].a.ID, VenueID: venues[2].v.ID, StartTime: at("2019-06-15T23:00:00Z")},
		{ArtistID: artists[2].a.ID, VenueID: venues[2].v.ID, StartTime: at("2035-04-01T20:00:00Z")},
		{ArtistID: artists[2].a.ID, VenueID: venues[2].v.ID, StartTime: at("2035-04-08T20:00:00Z")},
		{ArtistID: artists[2].a.ID, VenueID: venues[2].v.ID, StartTime: at("2035-04-15T20:00:00Z")},
	}
	if err := tx.Omit(clause.Associations).Create(&shows).Error; err != nil {
		return fmt.Errorf("seed shows: %w", err)
	}
	return nil
}

func seedQuestions(tx *gorm.DB) error {
	empty, err := isEmpty(tx, &model.Question{})
	if err != nil || !empty {
		return err
	}
	var cats []model.Category
	if err := tx.Order("id").Find(&cats).Error; err != nil {
		return err
	}
	byType := make(map[string]uint64, len(cats))
	for _, c := range cats {
		byType[c.Type] = c.ID
	}

	qs := []model.Question{
		{Question: "What is the heaviest organ in the human body?", Answer: "The Liver", CategoryID: byType["Science"], Difficulty: 4},
		{Question: "Who discovered penicillin?", Answer: "Alexander Fleming", CategoryID: byType["Science"], Difficulty: 3},
		{Question: "Hematology is a branch of medicine involving the study of what?", Answer: "Blood", CategoryID: byType["Science"], Difficulty: 4},
		{Question: "Which Dutch graphic artist–initials M C was a creator of optical illusions?", Answer: "Escher", CategoryID: byType["Art"], Difficulty: 1},
		{Question: "La Giaconda is better known as what?", Answer: "Mona Lisa", CategoryID: byType["Art"], Difficulty: 3},
		{Question: "What is the largest lake in Africa?", Answer: "Lake Victoria", CategoryID: byType["Geography"], Difficulty: 2},
		{Question: "In which royal palace would you find the Hall of Mirrors?", Answer: "The Palace of Versailles", CategoryID: byType["Geography"], Difficulty: 3},
		{Question: "The Taj Mahal is located in which Indian city?", Answer: "Agra", CategoryID: byType["Geography"], Difficulty: 2},
		{Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", CategoryID: byType["History"], Difficulty: 2},
		{Question: "What boxer's original name is Cassius Clay?", Answer: "Muhammad Ali", CategoryID: byType["History"], Difficulty: 1},
		{Question: "Which dung beetle was worshipped by the ancient Egyptians?", Answer: "Scarab", CategoryID: byType["History"], Difficulty: 4},
		{Question: "What movie earned Tom Hanks his third straight Oscar nomination, in 1996?", Answer: "Apollo 13", CategoryID: byType["Entertainment"], Difficulty: 4},
		{Question: "What actor did author Anne Rice first denounce, then praise in the role of her beloved Lestat?", Answer: "Tom Cruise", CategoryID: byType["Entertainment"], Difficulty: 4},
		{Question: "Which is the only team to play in every soccer World Cup tournament?", Answer: "Brazil", CategoryID: byType["Sports"], Difficulty: 3},
		{Question: "Which country won the first ever soccer World Cup in 1930?", Answer: "Uruguay", CategoryID: byType["Sports"], Difficulty: 4},
	}
	if err := tx.Create(&qs).Error; err != nil {
		return fmt.Errorf("seed questions: %w", err)
	}
	return nil
}
