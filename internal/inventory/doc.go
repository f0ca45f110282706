// Package inventory provides tenant-scoped persistence for categories
// and products.
//
// Every read, update, and delete is conjoined with the caller's tenant_id;
// no query path exists that crosses tenants. A lookup that misses because
// the row belongs to another tenant is indistinguishable from a lookup of
// a row that does not exist - both return ErrNotFound.
//
// products.category_id is a weak reference: reads LEFT JOIN categories,
// so a dangling id yields a null category_name rather than an error.
package inventory
