package view

import (
	"portableworkout-web/internal/auth"
	"portableworkout-web/internal/cart"
	"portableworkout-web/internal/catalog"
	"portableworkout-web/internal/shopapi"
)

// Base carries what every page needs: the title and whether the nav should
// show the signed-in links.
type Base struct {
	Title    string
	LoggedIn bool
}

// HomeData feeds the landing page.
type HomeData struct {
	Base
	Featured []catalog.Product
}

// ProductsData feeds the product listing with its filter bar state.
type ProductsData struct {
	Base
	Products    []catalog.Product
	Categories  []string
	PriceRanges []catalog.PriceRangeOption
	Filter      catalog.Filter
	View        string
	ActiveCount int
	Total       int
}

// ProductDetailData feeds the single product page.
type ProductDetailData struct {
	Base
	Product catalog.Product
}

// CartData feeds the cart page.
type CartData struct {
	Base
	Summary    cart.Summary
	FlashError string
}

// LoginData feeds the login form, including a re-render after a rejected
// submission.
type LoginData struct {
	Base
	Email      string
	Errors     map[string]string
	FlashError string
}

// RegisterData feeds the registration form.
type RegisterData struct {
	Base
	Form       auth.RegisterForm
	FlashError string
}

// UserData feeds the pages that just show the signed-in identity.
type UserData struct {
	Base
	User *shopapi.User
}

// NotFoundData feeds the 404 page.
type NotFoundData struct {
	Base
	Path string
}
