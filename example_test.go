package jsonmap_test

import (
	"fmt"

	"github.com/hengadev/jsonmap"
)

type Book struct {
	title string
	doi   string `jsonmap:"ignore"`
	views int    `jsonmap:"rename=secret"`
}

func (Book) JSONProperties() []jsonmap.Property {
	return []jsonmap.Property{
		jsonmap.Accessor("Shelf"),
	}
}

func (b Book) Shelf() string { return "S-" + b.title[:1] }

func ExampleToJSON() {
	out, err := jsonmap.ToJSON(Book{title: "Go", doi: "10.1/x", views: 23})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out)
	// Output: {"title":"Go","secret":23,"Shelf":"S-G"}
}

func ExampleNew_basicMode() {
	mapper, err := jsonmap.New(jsonmap.WithMode(jsonmap.ModeBasic))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(mapper.MustToJSON(Book{title: "Go", doi: "10.1/x", views: 23}))
	// Output: {"title":"Go","doi":"10.1/x","views":23}
}
