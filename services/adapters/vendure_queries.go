package adapters

// Documents for the Vendure Shop API.

const vendureSearchProducts = `
query SearchProducts($term: String!, $take: Int) {
  search(input: { term: $term, take: $take }) {
    totalItems
    items {
      productId
      productName
      slug
      description
      currencyCode
      priceWithTax {
        ... on SinglePrice { value }
        ... on PriceRange { min max }
      }
      productAsset { id preview }
      productVariantId
      productVariantName
      sku
    }
  }
}`

const vendureProductFields = `
    id
    name
    slug
    description
    variants { id name sku priceWithTax currencyCode stockLevel }
    featuredAsset { preview }
    assets { preview }`

const vendureGetProductBySlug = `
query GetProduct($slug: String!) {
  product(slug: $slug) {` + vendureProductFields + `
  }
}`

const vendureGetProductByID = `
query GetProductById($id: ID!) {
  product(id: $id) {` + vendureProductFields + `
  }
}`

const vendureOrderFields = `
      id
      code
      state
      currencyCode
      totalWithTax
      subTotalWithTax
      shippingWithTax
      lines {
        id
        quantity
        linePriceWithTax
        productVariant { id name sku priceWithTax }
      }
      shippingAddress { fullName streetLine1 streetLine2 city province postalCode countryCode }
      shippingLines { shippingMethod { id name } priceWithTax }
      customer { id emailAddress firstName lastName }`

const vendureAddItemToOrder = `
mutation AddItemToOrder($productVariantId: ID!, $quantity: Int!) {
  addItemToOrder(productVariantId: $productVariantId, quantity: $quantity) {
    __typename
    ... on Order {` + vendureOrderFields + `
    }
    ... on ErrorResult { errorCode message }
  }
}`

const vendureGetActiveOrder = `
query GetActiveOrder {
  activeOrder {` + vendureOrderFields + `
  }
}`

const vendureSetCustomer = `
mutation SetCustomerForOrder($input: CreateCustomerInput!) {
  setCustomerForOrder(input: $input) {
    __typename
    ... on Order { id }
    ... on ErrorResult { errorCode message }
  }
}`

const vendureSetShippingAddress = `
mutation SetShippingAddress($input: CreateAddressInput!) {
  setOrderShippingAddress(input: $input) {
    __typename
    ... on Order { id }
    ... on ErrorResult { errorCode message }
  }
}`

const vendureGetShippingMethods = `
query GetShippingMethods {
  eligibleShippingMethods { id name description price priceWithTax }
}`

const vendureSetShippingMethod = `
mutation SetShippingMethod($shippingMethodId: [ID!]!) {
  setOrderShippingMethod(shippingMethodId: $shippingMethodId) {
    __typename
    ... on Order { id }
    ... on ErrorResult { errorCode message }
  }
}`

const vendureTransitionToArrangingPayment = `
mutation TransitionToArrangingPayment {
  transitionOrderToState(state: "ArrangingPayment") {
    __typename
    ... on Order { id state }
    ... on OrderStateTransitionError { errorCode message transitionError }
  }
}`

const vendureAddPayment = `
mutation AddPaymentToOrder($input: PaymentInput!) {
  addPaymentToOrder(input: $input) {
    __typename
    ... on Order {` + vendureOrderFields + `
    }
    ... on ErrorResult { errorCode message }
  }
}`
