package data

import "math/rand"

// DriverNames seeds the name of a new profile
var DriverNames = struct {
	Male   []string
	Female []string
}{
	Male: []string{
		"James", "John", "Robert", "Michael", "William", "David", "Richard", "Joseph",
		"Thomas", "Charles", "Christopher", "Daniel", "Matthew", "Anthony", "Donald",
		"Mark", "Paul", "Steven", "Andrew", "Kenneth", "George", "Joshua", "Kevin",
		"Brian", "Edward", "Ronald", "Timothy", "Jason", "Jeffrey", "Ryan", "Jacob",
		"Gary", "Nicholas", "Eric", "Stephen", "Jonathan", "Larry", "Justin", "Scott",
		"Brandon", "Frank", "Benjamin", "Gregory", "Samuel", "Raymond", "Patrick",
		"Alexander", "Jack", "Dennis", "Jerry",
	},
	Female: []string{
		"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Barbara", "Susan",
		"Jessica", "Sarah", "Karen", "Nancy", "Lisa", "Betty", "Margaret", "Sandra",
		"Ashley", "Kimberly", "Emily", "Donna", "Michelle", "Dorothy", "Carol",
		"Amanda", "Melissa", "Deborah", "Stephanie", "Rebecca", "Laura", "Sharon",
		"Cynthia", "Kathleen", "Amy", "Shirley", "Angela", "Helen", "Anna", "Brenda",
		"Pamela", "Nicole", "Emma", "Samantha", "Katherine", "Christine", "Debra",
		"Rachel", "Catherine", "Carolyn", "Janet", "Ruth", "Maria",
	},
}

// RandomDriver picks a name from either list
func RandomDriver(rng *rand.Rand) string {
	n := rng.Intn(len(DriverNames.Male) + len(DriverNames.Female))
	if n < len(DriverNames.Male) {
		return DriverNames.Male[n]
	}
	return DriverNames.Female[n-len(DriverNames.Male)]
}
