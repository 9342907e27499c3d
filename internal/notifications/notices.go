package notifications

import "fmt"

func ReviewDeleted(owner, reviewID string) Notice {
	return Notice{
		Title: "Review deleted",
		Body:  "Your review has been deleted successfully!",
		Data: map[string]string{
			"type":      "review",
			"event":     "deleted",
			"owner":     owner,
			"review_id": reviewID,
		},
	}
}

func LoginFailed(reason string) Notice {
	return Notice{
		Title: "Login failed",
		Body:  fmt.Sprintf("Could not log in: %s", reason),
	}
}

func RegistrationFailed(reason string) Notice {
	return Notice{
		Title: "Registration failed",
		Body:  fmt.Sprintf("Could not create your account: %s", reason),
	}
}

func InvalidEmail(domain string) Notice {
	return Notice{
		Title: "Invalid email",
		Body:  fmt.Sprintf("Please use your %s email address.", domain),
	}
}

func MissingFields() Notice {
	return Notice{
		Title: "Missing fields",
		Body:  "Please fill in all fields.",
	}
}

func ClubCreated(name string) Notice {
	return Notice{
		Title: "Club added",
		Body:  fmt.Sprintf("%s has been added.", name),
		Data:  map[string]string{"type": "club", "name": name, "screen": "clubs"},
	}
}
