// Package recipedb defines the documents persisted for Recipe Space and the
// store that owns them. The document store is the sole owner of this data;
// nothing in the server caches these records across calls.
package recipedb

// Recipe is a recipe document in the recipes collection.
type Recipe struct {
	// ID is the document ID assigned by the store on creation. It is not a
	// field of the document itself.
	ID string `firestore:"-"`

	// Title is the title of the recipe.
	Title string `firestore:"title"`

	// VideoLink is an optional URL to a hosted video of the recipe.
	VideoLink string `firestore:"videoLink"`

	// Ingredients are the ingredients of the recipe, in display order.
	Ingredients []string `firestore:"ingredients"`

	// Instructions are the preparation steps, in order.
	Instructions []string `firestore:"instructions"`

	// ImageURLs are public URLs of the recipe's images, in upload order.
	ImageURLs []string `firestore:"imageUrls"`

	// AuthorID is the ID of the user that created the recipe. Immutable.
	AuthorID string `firestore:"authorId"`

	// CreatedAt is the creation time as an ISO-8601 string. Set once.
	CreatedAt string `firestore:"createdAt"`

	// Favorites are the IDs of users that favorited the recipe. Each user
	// appears at most once.
	Favorites []string `firestore:"favorites,omitempty"`
}

// User is a profile document in the users collection, keyed by the identity
// provider's UID. It is created lazily on first nickname submission; a
// signed-in identity without one has an incomplete profile.
type User struct {
	// UID is the identity provider's ID for the user.
	UID string `firestore:"uid"`

	// Email is the email the user signed in with.
	Email string `firestore:"email"`

	// Nickname is the user-chosen display name.
	Nickname string `firestore:"nickname"`
}
