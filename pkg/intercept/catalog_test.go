package intercept

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type announcer struct{}

func (announcer) Shout(parts ...string) string { return "loud" }

func (announcer) Whisper(msg string) string { return msg }

func addCredits(balance int64, delta int64) int64 { return balance + delta }

func TestCatalog_BindInstance(t *testing.T) {
	t.Run("exposes exported methods", func(t *testing.T) {
		catalog := NewCatalog()
		shop := &shopMenu{}
		require.NoError(t, catalog.BindInstance("ShopMenu", shop,
			WithMethodParamNames("TryPurchase", "count", "itemID")))

		target, err := catalog.Resolve("ShopMenu", "TryPurchase", VisDefault)
		require.NoError(t, err)
		assert.Equal(t, "ShopMenu.TryPurchase", target.Name())

		params := target.Params()
		require.Len(t, params, 2)
		assert.Equal(t, "count", params[0].Name)
		assert.Equal(t, KindInt, params[0].Kind)
		assert.Equal(t, "itemID", params[1].Name)
		assert.Equal(t, KindString, params[1].Kind)

		results := target.Results()
		require.Len(t, results, 1)
		assert.Equal(t, KindBool, results[0].Kind)
	})

	t.Run("names default to positions", func(t *testing.T) {
		catalog := NewCatalog()
		require.NoError(t, catalog.BindInstance("ShopMenu", &shopMenu{}))

		target, err := catalog.Resolve("ShopMenu", "TryPurchase", VisDefault)
		require.NoError(t, err)
		assert.Equal(t, "arg0", target.Params()[0].Name)
		assert.Equal(t, "arg1", target.Params()[1].Name)
	})

	t.Run("rejects duplicate type", func(t *testing.T) {
		catalog := NewCatalog()
		require.NoError(t, catalog.BindInstance("ShopMenu", &shopMenu{}))

		err := catalog.BindInstance("ShopMenu", &shopMenu{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already bound")
	})

	t.Run("rejects nil instance", func(t *testing.T) {
		err := NewCatalog().BindInstance("ShopMenu", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nil")
	})

	t.Run("rejects empty type name", func(t *testing.T) {
		assert.Error(t, NewCatalog().BindInstance("", &shopMenu{}))
	})

	t.Run("rejects instance without exported methods", func(t *testing.T) {
		err := NewCatalog().BindInstance("Empty", struct{}{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no exported methods")
	})

	t.Run("rejects names for unknown method", func(t *testing.T) {
		err := NewCatalog().BindInstance("ShopMenu", &shopMenu{},
			WithMethodParamNames("Missing", "a"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Missing")
	})

	t.Run("rejects name count mismatch", func(t *testing.T) {
		err := NewCatalog().BindInstance("ShopMenu", &shopMenu{},
			WithMethodParamNames("TryPurchase", "count"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parameter names")
	})

	t.Run("skips variadic methods", func(t *testing.T) {
		catalog := NewCatalog()
		require.NoError(t, catalog.BindInstance("Announcer", announcer{}))

		_, err := catalog.Resolve("Announcer", "Whisper", VisDefault)
		require.NoError(t, err)

		_, err = catalog.Resolve("Announcer", "Shout", VisDefault)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLookup)
	})
}

func TestCatalog_BindFunc(t *testing.T) {
	t.Run("binds package-level function", func(t *testing.T) {
		catalog := NewCatalog()
		require.NoError(t, catalog.BindFunc("Wallet", "AddCredits", addCredits,
			VisPublic|VisStatic, WithParamNames("balance", "delta")))

		target, err := catalog.Resolve("Wallet", "AddCredits", VisPublic|VisStatic)
		require.NoError(t, err)
		assert.Equal(t, "balance", target.Params()[0].Name)

		out, err := target.CallOriginal([]Value{Int(10), Int(5)})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, int64(15), out[0].Int())
	})

	t.Run("binds unexported method value", func(t *testing.T) {
		catalog := NewCatalog()
		shop := &shopMenu{}
		require.NoError(t, catalog.BindFunc("ShopMenu", "recordPurchase",
			func(count int, itemID string) bool { return shop.TryPurchase(count, itemID) },
			VisPrivate|VisInstance, WithParamNames("count", "itemID")))

		target, err := catalog.Resolve("ShopMenu", "recordPurchase", VisPrivate|VisInstance)
		require.NoError(t, err)

		_, err = target.CallOriginal([]Value{Int(3), Str("sword")})
		require.NoError(t, err)
		assert.Equal(t, []purchase{{count: 3, itemID: "sword"}}, shop.recorded())
	})

	t.Run("default mask does not reach private bindings", func(t *testing.T) {
		catalog := NewCatalog()
		require.NoError(t, catalog.BindFunc("ShopMenu", "reset",
			func() {}, VisPrivate|VisInstance))

		_, err := catalog.Resolve("ShopMenu", "reset", VisDefault)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLookup)
	})

	t.Run("rejects non-function", func(t *testing.T) {
		err := NewCatalog().BindFunc("Wallet", "AddCredits", 42, VisPublic|VisStatic)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a function")
	})

	t.Run("rejects nil function", func(t *testing.T) {
		var fn func()
		err := NewCatalog().BindFunc("Wallet", "Reset", fn, VisPublic|VisStatic)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nil")
	})

	t.Run("rejects variadic function", func(t *testing.T) {
		err := NewCatalog().BindFunc("Wallet", "Sum",
			func(ns ...int) int { return 0 }, VisPublic|VisStatic)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "variadic")
	})

	t.Run("rejects ambiguous visibility", func(t *testing.T) {
		err := NewCatalog().BindFunc("Wallet", "AddCredits", addCredits, VisAny)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "visibility")

		err = NewCatalog().BindFunc("Wallet", "AddCredits", addCredits, VisPublic)
		require.Error(t, err)
	})

	t.Run("rejects duplicate binding", func(t *testing.T) {
		catalog := NewCatalog()
		require.NoError(t, catalog.BindFunc("Wallet", "AddCredits", addCredits, VisPublic|VisStatic))

		err := catalog.BindFunc("Wallet", "AddCredits", addCredits, VisPublic|VisStatic)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already bound")
	})
}

func TestCatalog_Resolve(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		_, err := NewCatalog().Resolve("Warehouse", "Open", VisAny)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLookup)
	})

	t.Run("unknown method on bound type", func(t *testing.T) {
		catalog := NewCatalog()
		require.NoError(t, catalog.BindInstance("ShopMenu", &shopMenu{}))

		_, err := catalog.Resolve("ShopMenu", "Missing", VisAny)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLookup)
	})

	t.Run("mask excludes reflective method", func(t *testing.T) {
		catalog := NewCatalog()
		require.NoError(t, catalog.BindInstance("ShopMenu", &shopMenu{}))

		_, err := catalog.Resolve("ShopMenu", "TryPurchase", VisPrivate|VisInstance)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLookup)
	})

	t.Run("double binding is ambiguous until narrowed", func(t *testing.T) {
		catalog := NewCatalog()
		shop := &shopMenu{}
		require.NoError(t, catalog.BindInstance("ShopMenu", shop))
		require.NoError(t, catalog.BindFunc("ShopMenu", "TryPurchase",
			func(count int, itemID string) bool { return false },
			VisPrivate|VisInstance))

		_, err := catalog.Resolve("ShopMenu", "TryPurchase", VisAny)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLookup)
		assert.Contains(t, err.Error(), "2 callables")

		reflective, err := catalog.Resolve("ShopMenu", "TryPurchase", VisDefault)
		require.NoError(t, err)
		out, err := reflective.CallOriginal([]Value{Int(2), Str("sword")})
		require.NoError(t, err)
		assert.True(t, out[0].Bool())

		explicit, err := catalog.Resolve("ShopMenu", "TryPurchase", VisPrivate|VisInstance)
		require.NoError(t, err)
		out, err = explicit.CallOriginal([]Value{Int(2), Str("sword")})
		require.NoError(t, err)
		assert.False(t, out[0].Bool())
	})

	t.Run("resolution is stable across calls", func(t *testing.T) {
		catalog := NewCatalog()
		require.NoError(t, catalog.BindInstance("ShopMenu", &shopMenu{}))

		first, err := catalog.Resolve("ShopMenu", "TryPurchase", VisDefault)
		require.NoError(t, err)
		second, err := catalog.Resolve("ShopMenu", "TryPurchase", VisDefault)
		require.NoError(t, err)
		assert.Same(t, first, second)
	})
}

func TestCallable_CallOriginal(t *testing.T) {
	t.Run("converts argument widths", func(t *testing.T) {
		catalog := NewCatalog()
		require.NoError(t, catalog.BindFunc("Math", "Scale",
			func(factor int8, base uint16) int { return int(factor) * int(base) },
			VisPublic|VisStatic))

		target, err := catalog.Resolve("Math", "Scale", VisPublic|VisStatic)
		require.NoError(t, err)

		out, err := target.CallOriginal([]Value{Int(3), Int(100)})
		require.NoError(t, err)
		assert.Equal(t, int64(300), out[0].Int())
	})

	t.Run("rejects arity mismatch", func(t *testing.T) {
		catalog := NewCatalog()
		require.NoError(t, catalog.BindInstance("ShopMenu", &shopMenu{}))

		target, err := catalog.Resolve("ShopMenu", "TryPurchase", VisDefault)
		require.NoError(t, err)

		_, err = target.CallOriginal([]Value{Int(1)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "arguments")
	})

	t.Run("rejects incompatible argument", func(t *testing.T) {
		catalog := NewCatalog()
		require.NoError(t, catalog.BindInstance("ShopMenu", &shopMenu{}))

		target, err := catalog.Resolve("ShopMenu", "TryPurchase", VisDefault)
		require.NoError(t, err)

		_, err = target.CallOriginal([]Value{Str("one"), Str("sword")})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRewriteType)
	})

	t.Run("converts error results to opaque values", func(t *testing.T) {
		catalog := NewCatalog()
		require.NoError(t, catalog.BindFunc("Vault", "Withdraw",
			func(amount int) (int, error) {
				if amount > 100 {
					return 0, assert.AnError
				}
				return amount, nil
			},
			VisPublic|VisStatic))

		target, err := catalog.Resolve("Vault", "Withdraw", VisPublic|VisStatic)
		require.NoError(t, err)

		out, err := target.CallOriginal([]Value{Int(50)})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, int64(50), out[0].Int())
		assert.Nil(t, out[1].Interface())

		out, err = target.CallOriginal([]Value{Int(500)})
		require.NoError(t, err, "the original's own error comes back as a value")
		assert.Equal(t, assert.AnError, out[1].Interface())
	})
}
