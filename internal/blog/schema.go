package blog

// Schema is the GraphQL schema of the blog API.
const Schema = `
schema {
	query: Query
	mutation: Mutation
}

type Query {
	user(id: ID!): User
	allUsers(first: Int, after: String, usernameIcontains: String, isStaff: Boolean, isActive: Boolean, orderBy: String): UserConnection!
	category(id: ID!): Category
	allCategories(first: Int, after: String, user: ID, nameIcontains: String, orderBy: String): CategoryConnection!
	tag(id: ID!): Tag
	allTags(first: Int, after: String, user: ID, nameIcontains: String, orderBy: String): TagConnection!
	entry(id: ID!): Entry
	allEntries(first: Int, after: String, user: ID, titleIcontains: String, category: ID, tags: ID, status: String, date: String, orderBy: String): EntryConnection!
}

type Mutation {
	createCategory(input: CreateCategoryInput!): CategoryPayload!
	changeCategory(input: ChangeCategoryInput!): CategoryPayload!
	deleteCategory(input: DeleteInput!): DeletePayload!
	createTag(input: CreateTagInput!): TagPayload!
	changeTag(input: ChangeTagInput!): TagPayload!
	deleteTag(input: DeleteInput!): DeletePayload!
	createEntry(input: CreateEntryInput!): EntryPayload!
	changeEntry(input: ChangeEntryInput!): EntryPayload!
	deleteEntry(input: DeleteInput!): DeletePayload!
}

type PageInfo {
	hasNextPage: Boolean!
	hasPreviousPage: Boolean!
	startCursor: String
	endCursor: String
}

type User {
	id: ID!
	username: String!
	firstName: String!
	lastName: String!
	email: String!
	isStaff: Boolean!
	isActive: Boolean!
	dateJoined: String!
}

type UserConnection {
	totalCount: Int!
	pageInfo: PageInfo!
	edges: [UserEdge!]!
}

type UserEdge {
	cursor: String!
	node: User
}

type Category {
	id: ID!
	user: User
	name: String!
	slug: String!
	position: Int
	counterEntries: Int!
}

type CategoryConnection {
	totalCount: Int!
	pageInfo: PageInfo!
	edges: [CategoryEdge!]!
}

type CategoryEdge {
	cursor: String!
	node: Category
}

type Tag {
	id: ID!
	user: User
	name: String!
	slug: String!
	counterEntries: Int!
}

type TagConnection {
	totalCount: Int!
	pageInfo: PageInfo!
	edges: [TagEdge!]!
}

type TagEdge {
	cursor: String!
	node: Tag
}

type Entry {
	id: ID!
	user: User
	title: String!
	status: String!
	date: String!
	sticky: Boolean!
	categoryId: ID!
	category: Category
	tags: [Tag!]!
	body: String!
}

type EntryConnection {
	totalCount: Int!
	pageInfo: PageInfo!
	edges: [EntryEdge!]!
}

type EntryEdge {
	cursor: String!
	node: Entry
}

input CreateCategoryInput {
	user: ID!
	name: String!
	slug: String
	position: Int
	clientMutationId: String
}

input ChangeCategoryInput {
	id: ID!
	user: ID
	name: String
	slug: String
	position: Int
	clientMutationId: String
}

type CategoryPayload {
	category: Category
	errors: [String!]
	clientMutationId: String
}

input CreateTagInput {
	user: ID!
	name: String!
	slug: String
	clientMutationId: String
}

input ChangeTagInput {
	id: ID!
	user: ID
	name: String
	slug: String
	clientMutationId: String
}

type TagPayload {
	tag: Tag
	errors: [String!]
	clientMutationId: String
}

input CreateEntryInput {
	user: ID!
	title: String!
	date: String!
	status: String
	sticky: Boolean
	category: ID!
	tags: [ID!]
	body: String
	clientMutationId: String
}

input ChangeEntryInput {
	id: ID!
	user: ID
	title: String
	date: String
	status: String
	sticky: Boolean
	category: ID
	tags: [ID!]
	body: String
	clientMutationId: String
}

type EntryPayload {
	entry: Entry
	errors: [String!]
	clientMutationId: String
}

input DeleteInput {
	id: ID!
	clientMutationId: String
}

type DeletePayload {
	deleted: Boolean!
	clientMutationId: String
}
`
