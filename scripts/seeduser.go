// One-off: go run scripts/seeduser.go <username> <email> <password>
// Prints a document ready for db.users.insertOne in the mongo shell.
package main

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	username, email, password := "dev", "dev@example.com", "devpass"
	if len(os.Args) > 3 {
		username, email, password = os.Args[1], os.Args[2], os.Args[3]
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		panic(err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	fmt.Printf(`{"username": %q, "email": %q, "password": %q, "createdAt": ISODate(%q), "updatedAt": ISODate(%q)}`+"\n",
		username, email, string(h), now, now)
}
