package hygraph

const queryAllPosts = `
query GetAllPosts($first: Int, $skip: Int) {
  posts(first: $first, skip: $skip, stage: PUBLISHED) {
    id
    title
    slug
    excerpt
    publishedDate
    coverImage { url }
  }
}`

const queryPostBySlug = `
query GetPostBySlug($slug: String!) {
  post(where: { slug: $slug }, stage: PUBLISHED) {
    id
    title
    slug
    excerpt
    content { html }
    publishedDate
    updatedAt
    coverImage { url }
  }
}`

const queryAllSlugs = `
query GetAllSlugs {
  posts(stage: PUBLISHED) {
    slug
  }
}`
