package models

type Search struct {
	ID         string  `json:"id"`
	Lookup     string  `json:"lookup"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Attending  bool    `json:"attending"`
	ResultType string  `json:"result_type"`
	Rank       float32 `json:"rank"`
}

func SearchFromGuest(guest Guest) Search {
	return Search{
		ID:         guest.ID,
		Lookup:     guest.FullName(),
		FirstName:  guest.FirstName,
		LastName:   guest.LastName,
		Attending:  guest.Attending,
		ResultType: "guest",
	}
}
