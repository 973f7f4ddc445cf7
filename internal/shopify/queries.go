package shopify

// GraphQL documents for every Storefront API operation the storefront
// consumes. Cart mutations all return the same cart selection so the local
// line set can be replaced wholesale from any of them.

const cartSelection = `
      id
      checkoutUrl
      lines(first: 100) {
        edges {
          node {
            id
            quantity
            merchandise {
              ... on ProductVariant {
                id
                title
                priceV2: price {
                  amount
                  currencyCode
                }
                product {
                  title
                }
                image {
                  url
                  altText
                }
              }
            }
          }
        }
      }`

// CartCreate creates an empty cart and returns its handle and checkout URL.
const CartCreate = `
  mutation cartCreate {
    cartCreate {
      cart {` + cartSelection + `
      }
      userErrors {
        code
        field
        message
      }
    }
  }`

// CartQuery fetches a cart by its handle.
const CartQuery = `
  query getCart($cartId: ID!) {
    cart(id: $cartId) {` + cartSelection + `
    }
  }`

// CartLinesAdd adds merchandise lines to a cart.
const CartLinesAdd = `
  mutation cartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
    cartLinesAdd(cartId: $cartId, lines: $lines) {
      cart {` + cartSelection + `
      }
      userErrors {
        code
        field
        message
      }
    }
  }`

// CartLinesUpdate changes quantities of existing cart lines.
const CartLinesUpdate = `
  mutation cartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
    cartLinesUpdate(cartId: $cartId, lines: $lines) {
      cart {` + cartSelection + `
      }
      userErrors {
        code
        field
        message
      }
    }
  }`

// CartLinesRemove removes cart lines by line id.
const CartLinesRemove = `
  mutation cartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
    cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
      cart {` + cartSelection + `
      }
      userErrors {
        code
        field
        message
      }
    }
  }`

// CustomerAccessTokenCreate exchanges credentials for a customer bearer
// token.
const CustomerAccessTokenCreate = `
  mutation customerAccessTokenCreate($input: CustomerAccessTokenCreateInput!) {
    customerAccessTokenCreate(input: $input) {
      customerAccessToken {
        accessToken
        expiresAt
      }
      customerUserErrors {
        code
        field
        message
      }
    }
  }`

// CustomerCreate registers a new customer account.
const CustomerCreate = `
  mutation customerCreate($input: CustomerCreateInput!) {
    customerCreate(input: $input) {
      customer {
        id
        email
        firstName
        lastName
      }
      customerUserErrors {
        code
        field
        message
      }
    }
  }`

const addressSelection = `
        id
        address1
        address2
        city
        province
        zip
        country
        phone`

// CustomerQuery fetches the full profile: identity, addresses, and recent
// orders with their line items.
const CustomerQuery = `
  query getCustomer($customerAccessToken: String!) {
    customer(customerAccessToken: $customerAccessToken) {
      id
      firstName
      lastName
      email
      phone
      defaultAddress {` + addressSelection + `
      }
      addresses(first: 10) {
        edges {
          node {` + addressSelection + `
          }
        }
      }
      orders(first: 10) {
        edges {
          node {
            id
            name
            orderNumber
            processedAt
            statusUrl
            fulfillmentStatus
            financialStatus
            totalPriceV2 {
              amount
              currencyCode
            }
            lineItems(first: 10) {
              edges {
                node {
                  title
                  quantity
                  variant {
                    priceV2: price {
                      amount
                      currencyCode
                    }
                    image {
                      url
                      altText
                    }
                  }
                }
              }
            }
            shippingAddress {
              address1
              address2
              city
              province
              zip
              country
            }
          }
        }
      }
    }
  }`

// CustomerUpdate updates the customer's profile fields.
const CustomerUpdate = `
  mutation customerUpdate($customerAccessToken: String!, $customer: CustomerUpdateInput!) {
    customerUpdate(customerAccessToken: $customerAccessToken, customer: $customer) {
      customer {
        id
        firstName
        lastName
        email
        phone
      }
      customerUserErrors {
        code
        field
        message
      }
    }
  }`

// CustomerAddressCreate adds a mailing address to the customer.
const CustomerAddressCreate = `
  mutation customerAddressCreate($customerAccessToken: String!, $address: MailingAddressInput!) {
    customerAddressCreate(customerAccessToken: $customerAccessToken, address: $address) {
      customerAddress {` + addressSelection + `
      }
      customerUserErrors {
        code
        field
        message
      }
    }
  }`

// CustomerAddressUpdate updates an existing mailing address.
const CustomerAddressUpdate = `
  mutation customerAddressUpdate($customerAccessToken: String!, $id: ID!, $address: MailingAddressInput!) {
    customerAddressUpdate(customerAccessToken: $customerAccessToken, id: $id, address: $address) {
      customerAddress {` + addressSelection + `
      }
      customerUserErrors {
        code
        field
        message
      }
    }
  }`

// CustomerAddressDelete removes a mailing address.
const CustomerAddressDelete = `
  mutation customerAddressDelete($customerAccessToken: String!, $id: ID!) {
    customerAddressDelete(customerAccessToken: $customerAccessToken, id: $id) {
      deletedCustomerAddressId
      customerUserErrors {
        code
        field
        message
      }
    }
  }`

// CustomerDefaultAddressUpdate marks an address as the default.
const CustomerDefaultAddressUpdate = `
  mutation customerDefaultAddressUpdate($customerAccessToken: String!, $addressId: ID!) {
    customerDefaultAddressUpdate(customerAccessToken: $customerAccessToken, addressId: $addressId) {
      customer {
        id
        defaultAddress {
          id
        }
      }
      customerUserErrors {
        code
        field
        message
      }
    }
  }`

// OrderQuery fetches a single order node with full pricing breakdown.
const OrderQuery = `
  query getOrderDetails($id: ID!) {
    node(id: $id) {
      ... on Order {
        id
        name
        orderNumber
        processedAt
        statusUrl
        fulfillmentStatus
        financialStatus
        totalPriceV2 {
          amount
          currencyCode
        }
        subtotalPriceV2 {
          amount
          currencyCode
        }
        totalShippingPriceV2 {
          amount
          currencyCode
        }
        lineItems(first: 50) {
          edges {
            node {
              title
              quantity
              variant {
                priceV2: price {
                  amount
                  currencyCode
                }
                image {
                  url
                  altText
                }
              }
            }
          }
        }
        shippingAddress {
          address1
          address2
          city
          province
          zip
          country
        }
      }
    }
  }`

// ProductsQuery lists storefront products with variants and images.
const ProductsQuery = `
  query getProducts($first: Int!) {
    products(first: $first) {
      edges {
        node {
          id
          handle
          title
          description
          images(first: 5) {
            edges {
              node {
                url
                altText
              }
            }
          }
          variants(first: 10) {
            edges {
              node {
                id
                title
                availableForSale
                quantityAvailable
                priceV2: price {
                  amount
                  currencyCode
                }
              }
            }
          }
        }
      }
    }
  }`

// ProductByHandleQuery fetches a single product by its URL handle.
const ProductByHandleQuery = `
  query getProductByHandle($handle: String!) {
    product(handle: $handle) {
      id
      handle
      title
      description
      images(first: 5) {
        edges {
          node {
            url
            altText
          }
        }
      }
      variants(first: 10) {
        edges {
          node {
            id
            title
            availableForSale
            quantityAvailable
            priceV2: price {
              amount
              currencyCode
            }
          }
        }
      }
    }
  }`

const articleSelection = `
                id
                title
                handle
                excerpt
                content
                publishedAt
                image {
                  url
                  altText
                }
                author {
                  name
                }
                blog {
                  title
                }
                tags`

// ArticlesQuery lists recent articles across every blog, newest first.
const ArticlesQuery = `
  query getArticles($first: Int!) {
    blogs(first: 10) {
      edges {
        node {
          handle
          title
          articles(first: $first, sortKey: PUBLISHED_AT, reverse: true) {
            edges {
              node {` + articleSelection + `
              }
            }
          }
        }
      }
    }
  }`

// ArticleByHandleQuery searches every blog for an article matching a handle.
const ArticleByHandleQuery = `
  query getArticle($handle: String!) {
    blogs(first: 10) {
      edges {
        node {
          handle
          title
          articles(first: 1, query: $handle) {
            edges {
              node {` + articleSelection + `
              }
            }
          }
        }
      }
    }
  }`
