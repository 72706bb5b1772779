package services

import "bestseller-dashboard/models"

func sampleTable() models.BookTable {
	return models.BookTable{Books: []models.Book{
		{Title: "Wonder", Author: "R. J. Palacio", Rating: 4.8, Reviews: 21625, Price: 9, Year: 2013, Genre: "Fiction"},
		{Title: "Becoming", Author: "Michelle Obama", Rating: 4.8, Reviews: 61133, Price: 11, Year: 2018, Genre: "Non Fiction"},
		{Title: "Wonder", Author: "R. J. Palacio", Rating: 4.8, Reviews: 21625, Price: 9, Year: 2014, Genre: "Fiction"},
		{Title: "The Help", Author: "Kathryn Stockett", Rating: 4.8, Reviews: 13871, Price: 6, Year: 2009, Genre: "Fiction"},
		{Title: "Educated", Author: "Tara Westover", Rating: 4.7, Reviews: 28729, Price: 15, Year: 2018, Genre: "Non Fiction"},
		{Title: "Diary of a Wimpy Kid", Author: "Jeff Kinney", Rating: 4.8, Reviews: 6540, Price: 4, Year: 2014, Genre: "Fiction"},
		{Title: "Dog Days", Author: "Jeff Kinney", Rating: 4.8, Reviews: 3181, Price: 12, Year: 2009, Genre: "Fiction"},
		{Title: "Publication Manual", Author: "American Psychological Association", Rating: 4.5, Reviews: 8580, Price: 46, Year: 2013, Genre: "Non Fiction"},
		{Title: "StrengthsFinder 2.0", Author: "Gallup", Rating: 4.0, Reviews: 5069, Price: 17, Year: 2009, Genre: "Non Fiction"},
		{Title: "Mockingjay", Author: "Suzanne Collins", Rating: 4.5, Reviews: 9131, Price: 0, Year: 2010, Genre: "Fiction"},
	}}
}

// scenarioTable is the two-row example used throughout the dashboard docs.
func scenarioTable() models.BookTable {
	return models.BookTable{Books: []models.Book{
		{Title: "Fiction Book", Author: "A", Rating: 4.9, Reviews: 100, Price: 10, Year: 2016, Genre: "Fiction"},
		{Title: "Non Fiction Book", Author: "B", Rating: 4.5, Reviews: 500, Price: 8, Year: 2016, Genre: "Non Fiction"},
	}}
}
